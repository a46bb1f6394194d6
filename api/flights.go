package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gottomy2/departures/internal/domain"
	"github.com/gottomy2/departures/internal/repository"
	"github.com/gottomy2/departures/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	FlightNumber  string   `json:"flight_number" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	Status        string   `json:"status" binding:"required"`
	DepartureTime string   `json:"departure_time" binding:"required"`
	Zone          string   `json:"zone" binding:"required"`
	GateNumber    string   `json:"gate_number"`
	Temperature   *float64 `json:"temperature"`
}

type gateResponse struct {
	ID         int64  `json:"id"`
	GateNumber string `json:"gate_number"`
}

type flightResponse struct {
	ID            int64         `json:"id"`
	FlightNumber  string        `json:"flight_number"`
	Destination   string        `json:"destination"`
	Status        string        `json:"status"`
	DepartureTime string        `json:"departure_time"`
	Zone          string        `json:"zone"`
	Gate          *gateResponse `json:"gate,omitempty"`
	Temperature   *float64      `json:"temperature,omitempty"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register wires the flight routes; mutating routes go through authorized.
func (h *FlightHandler) Register(router *gin.RouterGroup, authorized gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", authorized, h.create)
	router.PUT("/:id", authorized, h.update)
	router.DELETE("/:id", authorized, h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := repository.FlightFilter{FlightNumber: c.Query("flightNumber")}

	if s := c.Query("status"); s != "" {
		status, err := domain.ParseFlightStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Status = &status
	}
	if z := c.Query("zone"); z != "" {
		zone, err := domain.ParseFlightZone(z)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Zone = &zone
	}

	page := pageFromQuery(c)
	items, total, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toFlightResponse(&items[i]))
	}
	c.JSON(http.StatusOK, pagedResponse{Items: resp, Page: page.Page, Size: page.Size, Total: total})
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	input, ok := bindFlightInput(c)
	if !ok {
		return
	}

	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	input, ok := bindFlightInput(c)
	if !ok {
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindFlightInput(c *gin.Context) (flights.FlightInput, bool) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return flights.FlightInput{}, false
	}

	status, err := domain.ParseFlightStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return flights.FlightInput{}, false
	}
	zone, err := domain.ParseFlightZone(req.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return flights.FlightInput{}, false
	}
	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_time, expected RFC3339"})
		return flights.FlightInput{}, false
	}

	return flights.FlightInput{
		FlightNumber:  req.FlightNumber,
		Destination:   req.Destination,
		Status:        status,
		DepartureTime: departure,
		Zone:          zone,
		GateNumber:    req.GateNumber,
		Temperature:   req.Temperature,
	}, true
}

func toFlightResponse(f *domain.Flight) flightResponse {
	resp := flightResponse{
		ID:            f.ID,
		FlightNumber:  f.FlightNumber,
		Destination:   f.Destination,
		Status:        string(f.Status),
		DepartureTime: f.DepartureTime.Format(time.RFC3339),
		Zone:          string(f.Zone),
		Temperature:   f.Temperature,
	}
	if f.Gate != nil {
		resp.Gate = &gateResponse{ID: f.Gate.ID, GateNumber: f.Gate.GateNumber}
	}
	return resp
}
