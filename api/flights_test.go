package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gottomy2/departures/internal/domain"
	"github.com/gottomy2/departures/internal/repository"
	"github.com/gottomy2/departures/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter repository.FlightFilter, page domain.PageRequest) ([]domain.Flight, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Flight), args.Get(1).(int64), args.Error(2)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, id int64, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightUseCase) MarkDeparted(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?status=PLANNED&zone=SCHENGEN", nil)

	status := domain.FlightStatusPlanned
	zone := domain.FlightZoneSchengen
	expectedFilter := repository.FlightFilter{Status: &status, Zone: &zone}

	result := []domain.Flight{
		{ID: 1, FlightNumber: "LO123", Destination: "Warsaw", Status: status, Zone: zone, DepartureTime: time.Now()},
	}
	mockService.On("List", mock.Anything, expectedFilter, domain.NewPageRequest(0, 20)).Return(result, int64(1), nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LO123")
	assert.Contains(t, w.Body.String(), `"total":1`)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_InvalidStatus(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights?status=BOARDING", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List")
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/999", nil)

	mockService.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"flight_number":"LO123","destination":"Warsaw","status":"PLANNED","departure_time":"2025-06-01T10:30:00Z","zone":"SCHENGEN","gate_number":"A1"}`
	c.Request = httptest.NewRequest("POST", "/api/flights", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Flight{
		ID:            1,
		FlightNumber:  "LO123",
		Destination:   "Warsaw",
		Status:        domain.FlightStatusPlanned,
		DepartureTime: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		Zone:          domain.FlightZoneSchengen,
		Gate:          &domain.Gate{ID: 7, GateNumber: "A1"},
	}
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(in flights.FlightInput) bool {
		return in.FlightNumber == "LO123" && in.GateNumber == "A1"
	})).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"gate_number":"A1"`)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_Conflict(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"flight_number":"LO123","destination":"Warsaw","status":"PLANNED","departure_time":"2025-06-01T10:30:00Z","zone":"SCHENGEN"}`
	c.Request = httptest.NewRequest("POST", "/api/flights", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrConflict)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFlightHandler_update_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	body := `{"flight_number":"LO123","destination":"Warsaw","status":"PLANNED","departure_time":"2025-06-01T10:30:00Z","zone":"SCHENGEN"}`
	c.Request = httptest.NewRequest("PUT", "/api/flights/999", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Update", mock.Anything, int64(999), mock.Anything).Return(nil, domain.ErrNotFound)

	handler.update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_remove(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/api/flights/1", nil)

	mockService.On("Delete", mock.Anything, int64(1)).Return(nil)

	handler.remove(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFlightHandler_remove_InvalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("DELETE", "/api/flights/abc", nil)

	handler.remove(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Delete")
}
