package domain

import "time"

type Gate struct {
	ID         int64
	GateNumber string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
