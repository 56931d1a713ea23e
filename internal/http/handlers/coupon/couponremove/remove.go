// Package couponremove реализует HTTP-обработчик удаления купона администратором.
package couponremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Service описывает интерфейс бизнес-логики удаления купона.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// Handler обрабатывает запросы на удаление купона.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить купон
// @Description Удаляет купон по ID. Доступно только администратору.
// @Tags Coupons
// @Produce  json
// @Param id path string true "ID купона"
// @Success 200 {object} map[string]any "Купон удалён"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Купон не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons/{id} [delete]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCouponNotFound) {
			log.Error("coupon not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("coupon not found"))
			return
		}
		log.Error("failed to remove coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove coupon"))
		return
	}

	log.Info("success to remove coupon", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
