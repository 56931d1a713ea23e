// Package token реализует HTTP-обработчик выдачи JWT токена по email пользователя.
//
// Handler принимает email, находит зарегистрированного пользователя для определения
// его роли и возвращает подписанный токен. Для незарегистрированного email токен
// выдается с ролью user: учётная запись появится при первом upsert профиля.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/jwt"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// TokenRequest представляет запрос на выдачу токена.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс получения пользователя по email.
type Service interface {
	Get(ctx context.Context, email string) (*models.User, error)
}

// Handler обрабатывает запросы на выдачу JWT токена.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис для определения роли пользователя
	maker    jwt.Maker           // Генератор JWT токенов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером, сервисом и генератором токенов.
func New(log *slog.Logger, service Service, maker jwt.Maker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maker:    maker,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдать JWT токен
// @Description Выдает подписанный JWT токен для указанного email. Роль берется из учётной записи, для нового email — user.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body TokenRequest true "Email пользователя"
// @Success 200 {object} map[string]any "Токен выдан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выдаче токена"
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	role := models.RoleUser
	user, err := h.service.Get(r.Context(), req.Email)
	switch {
	case err == nil:
		role = user.Role
	case errors.Is(err, models.ErrUserNotFound):
		log.Info("user not registered yet, issuing token with default role")
	default:
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	tokenStr, err := h.maker.GenerateToken(req.Email, role)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue token"))
		return
	}

	log.Info("token issued", slog.String("email", req.Email), slog.String("role", role))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": tokenStr,
	}))
}
