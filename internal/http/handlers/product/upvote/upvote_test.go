package upvote

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// MockService реализует интерфейс upvote.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Upvote(ctx context.Context, id, email string) error {
	return m.Called(ctx, id, email).Error(0)
}

func TestUpvoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешный голос",
			email: "carol@example.com",
			setupMock: func(m *MockService) {
				m.On("Upvote", mock.Anything, "p1", "carol@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"p1"`,
		},
		{
			name:           "отсутствует авторизация",
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:  "продукт не найден",
			email: "carol@example.com",
			setupMock: func(m *MockService) {
				m.On("Upvote", mock.Anything, "p1", "carol@example.com").
					Return(models.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"product not found"}`,
		},
		{
			name:  "голос за собственный продукт",
			email: "owner@example.com",
			setupMock: func(m *MockService) {
				m.On("Upvote", mock.Anything, "p1", "owner@example.com").
					Return(models.ErrSelfInteraction)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"owner cannot upvote own product"}`,
		},
		{
			name:  "повторный голос",
			email: "carol@example.com",
			setupMock: func(m *MockService) {
				m.On("Upvote", mock.Anything, "p1", "carol@example.com").
					Return(models.ErrAlreadyActed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"already upvoted"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/products/p1/upvote", nil)

			ctx := context.WithValue(req.Context(), middlewarectx.Email, tt.email)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "p1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
