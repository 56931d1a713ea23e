package couponvalidate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// MockService реализует интерфейс couponvalidate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Validate(ctx context.Context, code string) (float64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(float64), args.Error(1)
}

func TestValidateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "действующий купон",
			requestBody: `{"code":"SAVE20"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "SAVE20").Return(20.0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"discount":20`,
		},
		{
			name:        "неизвестный купон",
			requestBody: `{"code":"NOPE"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "NOPE").Return(0.0, models.ErrCouponNotFound)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid or expired coupon"}`,
		},
		{
			name:        "просроченный купон неотличим от неизвестного",
			requestBody: `{"code":"OLD1"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "OLD1").Return(0.0, models.ErrCouponExpired)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid or expired coupon"}`,
		},
		{
			name:           "пустой код",
			requestBody:    `{"code":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Code is a required field`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: `{"code":"SAVE20"}`,
			setupMock: func(m *MockService) {
				m.On("Validate", mock.Anything, "SAVE20").Return(0.0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not validate coupon"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/coupons/validate", bytes.NewReader([]byte(tt.requestBody)))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
