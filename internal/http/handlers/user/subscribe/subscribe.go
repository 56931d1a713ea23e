// Package subscribe реализует HTTP-обработчик изменения состояния подписки пользователя.
//
// Подписка включается после успешной оплаты: фронтенд подтверждает платеж
// у провайдера и вызывает этот обработчик от имени самого пользователя.
package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// SubscribeRequest представляет запрос на изменение подписки.
type SubscribeRequest struct {
	IsSubscribed     bool   `json:"isSubscribed"`
	SubscriptionDate string `json:"subscriptionDate" validate:"omitempty"`
}

// Service описывает интерфейс бизнес-логики изменения подписки.
type Service interface {
	SetSubscription(ctx context.Context, email string, isSubscribed bool, dateStr string) error
}

// Handler обрабатывает запросы на изменение подписки пользователя.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить подписку пользователя
// @Description Включает или выключает подписку текущего пользователя. При включении без даты фиксируется текущий момент.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body SubscribeRequest true "Состояние подписки"
// @Success 200 {object} map[string]any "Подписка изменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/subscription [patch]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.SetSubscription(r.Context(), email, req.IsSubscribed, req.SubscriptionDate); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription"))
		return
	}

	log.Info("subscription updated", slog.String("email", email), slog.Bool("is_subscribed", req.IsSubscribed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"email":        email,
		"isSubscribed": req.IsSubscribed,
	}))
}
