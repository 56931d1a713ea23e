// Package report реализует HTTP-обработчик жалобы на продукт.
//
// Логика зеркальна голосованию: жалоба владельца на собственный продукт
// и повторная жалоба отклоняются.
package report

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Handler обрабатывает запросы на жалобу на продукт.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики жалоб
}

// Service описывает интерфейс бизнес-логики жалоб.
type Service interface {
	Report(ctx context.Context, id, email string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пожаловаться на продукт
// @Description Добавляет жалобу текущего пользователя. Жалоба на свой продукт и повторная жалоба отклоняются.
// @Tags Products
// @Produce  json
// @Param id path string true "ID продукта"
// @Success 200 {object} map[string]any "Жалоба учтена"
// @Failure 400 {object} response.ErrorResponse "Повторная жалоба"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Жалоба на собственный продукт"
// @Failure 404 {object} response.ErrorResponse "Продукт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/{id}/report [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.report"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Report(r.Context(), id, email); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			log.Error("product not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
		case errors.Is(err, models.ErrSelfInteraction):
			log.Error("owner cannot report own product", slog.String("email", email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("owner cannot report own product"))
		case errors.Is(err, models.ErrAlreadyActed):
			log.Error("user already reported this product", slog.String("email", email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("already reported"))
		default:
			log.Error("failed to report product", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not report product"))
		}
		return
	}

	log.Info("success to report product", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
