// Package upsert реализует HTTP-обработчик сохранения профиля пользователя при входе.
//
// Handler принимает JSON-профиль, валидирует его и вызывает бизнес-логику upsert:
// новая учётная запись создаётся с ролью user, для существующей обновляются
// только имя и аватар. Роль и подписка повторным входом не затрагиваются.
package upsert

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Handler управляет HTTP-запросами на upsert профиля пользователя.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики upsert профиля
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики upsert пользователя.
type Service interface {
	Upsert(ctx context.Context, req models.DummyUser) (models.UpsertResult, string, error)
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
// @Summary Сохранить профиль пользователя
// @Description Создает учётную запись при первом входе или обновляет имя и аватар существующей. Возвращает исход операции.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Профиль пользователя"
// @Success 200 {object} map[string]any "Профиль сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении профиля"
// @Router /users [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.upsert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, id, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		log.Error("failed to upsert user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save user"))
		return
	}

	log.Info("user upserted", slog.String("email", req.Email), slog.String("result", string(result)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"result": result,
		"id":     id,
	}))
}
