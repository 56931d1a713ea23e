// Package accepted реализует HTTP-обработчик публичной витрины одобренных продуктов.
//
// Handler принимает необязательные query-параметры search (поиск по тегам)
// и page (номер страницы, с единицы) и возвращает страницу продуктов
// вместе с общим числом страниц.
package accepted

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Handler обрабатывает запросы витрины одобренных продуктов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики витрины
}

// Service описывает интерфейс бизнес-логики витрины одобренных продуктов.
type Service interface {
	ListAccepted(ctx context.Context, search string, page int64) (*models.AcceptedPage, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить витрину одобренных продуктов
// @Description Возвращает страницу одобренных продуктов с поиском по тегам и общим числом страниц.
// @Tags Products
// @Produce  json
// @Param search query string false "Поиск по тегам"
// @Param page query int false "Номер страницы, с единицы"
// @Success 200 {object} map[string]any "Страница продуктов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /products/accepted [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.accepted"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	search := r.URL.Query().Get("search")
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	res, err := h.service.ListAccepted(r.Context(), search, page)
	if err != nil {
		log.Error("failed to list accepted products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list products"))
		return
	}

	log.Info("success to list accepted products",
		slog.Int("count", len(res.Products)),
		slog.Int64("total_pages", res.TotalPages))
	render.JSON(w, r, response.OKWithData(res))
}
