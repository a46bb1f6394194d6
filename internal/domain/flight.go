package domain

import (
	"fmt"
	"time"
)

type FlightStatus string

const (
	FlightStatusPlanned   FlightStatus = "PLANNED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

func ParseFlightStatus(s string) (FlightStatus, error) {
	switch FlightStatus(s) {
	case FlightStatusPlanned, FlightStatusDelayed, FlightStatusDeparted, FlightStatusCancelled:
		return FlightStatus(s), nil
	}
	return "", fmt.Errorf("unknown flight status %q", s)
}

type FlightZone string

const (
	FlightZoneSchengen    FlightZone = "SCHENGEN"
	FlightZoneNonSchengen FlightZone = "NON_SCHENGEN"
)

func ParseFlightZone(s string) (FlightZone, error) {
	switch FlightZone(s) {
	case FlightZoneSchengen, FlightZoneNonSchengen:
		return FlightZone(s), nil
	}
	return "", fmt.Errorf("unknown flight zone %q", s)
}

type Flight struct {
	ID            int64
	FlightNumber  string
	Destination   string
	Status        FlightStatus
	DepartureTime time.Time
	Zone          FlightZone
	Gate          *Gate
	Temperature   *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DepartureDate is the calendar day used as the weather cache key component.
func (f *Flight) DepartureDate() string {
	return f.DepartureTime.Format("2006-01-02")
}
