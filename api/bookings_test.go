package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/slauto/shopbooking/internal/domain"
	"github.com/slauto/shopbooking/internal/service/bookings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of bookings.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, submission bookings.Submission) (*domain.Booking, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func postBooking(t *testing.T, body []byte) (*MockBookingUseCase, *httptest.ResponseRecorder, *gin.Context, *BookingHandler) {
	t.Helper()
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return mockService, w, c, handler
}

func TestBookingHandler_health(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/health", nil)

	handler.health(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["ok"])
	assert.Equal(t, ServiceName, response["service"])
	assert.NotEmpty(t, response["timestamp"])
}

func TestBookingHandler_create(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"name": "Jane Doe", "phone": "403-555-0199"})
	mockService, w, c, handler := postBooking(t, body)

	booking := &domain.Booking{ID: "bk_1756633200000", Status: domain.StatusNew}
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("bookings.Submission")).Return(booking, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["ok"])
	assert.Equal(t, "bk_1756633200000", response["id"])
	assert.Equal(t, "Booking request saved.", response["message"])

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_spamRejected(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"website": "http://spam.example"})
	mockService, w, c, handler := postBooking(t, body)

	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("bookings.Submission")).Return(nil, bookings.ErrSpamRejected)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Spam rejected."}`, w.Body.String())
}

func TestBookingHandler_create_validationFailed(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"name": ""})
	mockService, w, c, handler := postBooking(t, body)

	vErr := &bookings.ValidationError{Details: []string{"Name is required.", "Phone number is required."}}
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("bookings.Submission")).Return(nil, vErr)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		OK      bool     `json:"ok"`
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.OK)
	assert.Equal(t, "Validation failed.", response.Error)
	assert.Equal(t, vErr.Details, response.Details)
}

func TestBookingHandler_create_storeError(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"name": "Jane Doe"})
	mockService, w, c, handler := postBooking(t, body)

	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("bookings.Submission")).Return(nil, errors.New("disk full"))

	handler.create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Server error while saving booking request."}`, w.Body.String())
}

func TestBookingHandler_create_malformedBody(t *testing.T) {
	mockService, w, c, handler := postBooking(t, []byte("{not json"))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	stored := []domain.Booking{
		{ID: "bk_2", CreatedAt: "2026-08-31T10:00:00.000Z", Status: domain.StatusNew},
		{ID: "bk_1", CreatedAt: "2026-08-30T10:00:00.000Z", Status: domain.StatusNew},
	}
	mockService.On("List", c.Request.Context()).Return(stored, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		OK       bool             `json:"ok"`
		Bookings []domain.Booking `json:"bookings"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.OK)
	assert.Equal(t, stored, response.Bookings)
}

func TestBookingHandler_list_emptyStore(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Booking(nil), nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"bookings":[]}`, w.Body.String())
}

func TestBookingHandler_list_storeError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	mockService.On("List", c.Request.Context()).Return(nil, errors.New("permission denied"))

	handler.list(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Server error while loading bookings."}`, w.Body.String())
}
