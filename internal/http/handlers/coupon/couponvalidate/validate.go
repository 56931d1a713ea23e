// Package couponvalidate реализует HTTP-обработчик проверки купона перед оплатой.
//
// Несуществующий и просроченный купоны неразличимы для клиента:
// оба случая дают один и тот же ответ 400.
package couponvalidate

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
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// ValidateRequest представляет запрос на проверку купона.
type ValidateRequest struct {
	Code string `json:"code" validate:"required,alphanum"`
}

// Service описывает интерфейс бизнес-логики проверки купона.
type Service interface {
	Validate(ctx context.Context, code string) (float64, error)
}

// Handler обрабатывает запросы на проверку купона.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики купонов
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
// @Summary Проверить купон
// @Description Проверяет код купона и возвращает процент скидки. Неизвестный и просроченный купоны дают одинаковый ответ.
// @Tags Coupons
// @Accept  json
// @Produce  json
// @Param request body ValidateRequest true "Код купона"
// @Success 200 {object} map[string]any "Купон действителен"
// @Failure 400 {object} response.ErrorResponse "Купон недействителен или просрочен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /coupons/validate [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req ValidateRequest
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

	discount, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, models.ErrCouponNotFound) || errors.Is(err, models.ErrCouponExpired) {
			log.Error("coupon is invalid or expired", slog.String("code", req.Code))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid or expired coupon"))
			return
		}
		log.Error("failed to validate coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not validate coupon"))
		return
	}

	log.Info("coupon validated", slog.String("code", req.Code), slog.Float64("discount", discount))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"discount": discount,
	}))
}
