package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerEmail string, req models.DummyProduct) (string, error) {
	args := m.Called(ctx, ownerEmail, req)
	return args.String(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummyProduct{
		ProductName: "DevBoard",
		Description: "Kanban для небольших команд",
		Tags:        []string{"productivity"},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная публикация",
			requestBody: validBody,
			email:       "alice@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "alice@example.com", mock.AnythingOfType("models.DummyProduct")).
					Return("prod-1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":"prod-1"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			email:          "alice@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "ошибка валидации",
			requestBody:    models.DummyProduct{},
			email:          "alice@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field ProductName is a required field"}`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody,
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "исчерпана квота публикаций",
			requestBody: validBody,
			email:       "alice@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "alice@example.com", mock.AnythingOfType("models.DummyProduct")).
					Return("", models.ErrQuotaExceeded)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"submission quota exceeded"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody,
			email:       "alice@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "alice@example.com", mock.AnythingOfType("models.DummyProduct")).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middlewarectx.Email, tt.email)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
