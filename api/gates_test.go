package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gottomy2/departures/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGateUseCase struct {
	mock.Mock
}

func (m *MockGateUseCase) List(ctx context.Context, page domain.PageRequest) ([]domain.Gate, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.Gate), args.Get(1).(int64), args.Error(2)
}

func (m *MockGateUseCase) GetByID(ctx context.Context, id int64) (*domain.Gate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

func (m *MockGateUseCase) GetByNumber(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	args := m.Called(ctx, gateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

func (m *MockGateUseCase) Create(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	args := m.Called(ctx, gateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

func (m *MockGateUseCase) Update(ctx context.Context, id int64, gateNumber string) (*domain.Gate, error) {
	args := m.Called(ctx, id, gateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

func (m *MockGateUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateUseCase) ResolveOrCreate(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	args := m.Called(ctx, gateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

func TestGateHandler_list(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/gates", nil)

	gates := []domain.Gate{{ID: 1, GateNumber: "A1"}, {ID: 2, GateNumber: "B2"}}
	mockService.On("List", mock.Anything, domain.NewPageRequest(0, 20)).Return(gates, int64(2), nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A1")
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestGateHandler_search(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/gates/search?gateNumber=A1", nil)

	gate := &domain.Gate{ID: 1, GateNumber: "A1"}
	mockService.On("GetByNumber", mock.Anything, "A1").Return(gate, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A1")
}

func TestGateHandler_search_MissingParam(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/gates/search", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByNumber")
}

func TestGateHandler_search_NotFound(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/gates/search?gateNumber=Z9", nil)

	mockService.On("GetByNumber", mock.Anything, "Z9").Return(nil, domain.ErrNotFound)

	handler.search(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGateHandler_create_Conflict(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/gates", strings.NewReader(`{"gate_number":"A1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", mock.Anything, "A1").Return(nil, domain.ErrConflict)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGateHandler_remove_NotFound(t *testing.T) {
	mockService := &MockGateUseCase{}
	handler := NewGateHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	c.Request = httptest.NewRequest("DELETE", "/api/gates/999", nil)

	mockService.On("Delete", mock.Anything, int64(999)).Return(domain.ErrNotFound)

	handler.remove(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
