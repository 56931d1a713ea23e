// Package couponlist реализует HTTP-обработчик получения всех купонов.
package couponlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Service описывает интерфейс бизнес-логики списка купонов.
type Service interface {
	List(ctx context.Context) ([]*models.Coupon, error)
}

// Handler обрабатывает запросы на получение купонов.
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
// @Summary Получить все купоны
// @Description Возвращает все купоны, включая просроченные, отсортированные по дате окончания.
// @Tags Coupons
// @Produce  json
// @Success 200 {object} map[string]any "Список купонов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coupons, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list coupons"))
		return
	}

	log.Info("success to list coupons", slog.Int("count", len(coupons)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupons": coupons,
	}))
}
