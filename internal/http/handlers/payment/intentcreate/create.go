// Package intentcreate обрабатывает создание платежного намерения для оплаты подписки.
//
// Цена подписки фиксирована в конфигурации. Необязательный код купона
// проверяется перед созданием намерения и уменьшает сумму на процент скидки.
package intentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/http/response"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
	"github.com/magabrotheeeer/tech-elevate/internal/paymentprovider"
)

// CreateIntentRequestApp представляет запрос на создание платежного намерения.
type CreateIntentRequestApp struct {
	CouponCode string `json:"couponCode" validate:"omitempty,alphanum"`
}

// ProviderClient определяет интерфейс для работы с платежным провайдером.
type ProviderClient interface {
	CreateIntent(reqParams paymentprovider.CreateIntentRequest) (*paymentprovider.CreateIntentResponse, error)
}

// CouponService определяет интерфейс проверки купона.
type CouponService interface {
	Validate(ctx context.Context, code string) (float64, error)
}

// Handler обрабатывает запросы на создание платежных намерений.
type Handler struct {
	log            *slog.Logger   // Логгер для записи информации и ошибок
	providerClient ProviderClient // Клиент для работы с провайдером
	couponService  CouponService
	price          float64             // Цена подписки
	currency       string              // Валюта платежа
	validate       *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, providerClient ProviderClient, cs CouponService, price float64, currency string) *Handler {
	return &Handler{
		log:            log,
		providerClient: providerClient,
		couponService:  cs,
		price:          price,
		currency:       currency,
		validate:       validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платежное намерение
// @Description Создает платежное намерение для оплаты подписки. Купон уменьшает сумму на процент скидки.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body CreateIntentRequestApp true "Необязательный код купона"
// @Success 200 {object} map[string]any "Платежное намерение создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или купон"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании платежа"
// @Router /payments/create-intent [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intentcreate"
	log := h.log.With(slog.String("op", op))

	var req CreateIntentRequestApp
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

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	price := h.price
	if req.CouponCode != "" {
		discount, err := h.couponService.Validate(r.Context(), req.CouponCode)
		if err != nil {
			if errors.Is(err, models.ErrCouponNotFound) || errors.Is(err, models.ErrCouponExpired) {
				log.Error("coupon is invalid or expired", slog.String("code", req.CouponCode))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid or expired coupon"))
				return
			}
			log.Error("failed to validate coupon", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
		price = price * (1 - discount/100)
	}

	intentReq := paymentprovider.CreateIntentRequest{
		Amount: paymentprovider.Amount{
			Value:    fmt.Sprintf("%.2f", price),
			Currency: h.currency,
		},
		Description: "TechElevate membership",
		Metadata: map[string]string{
			"email":       email,
			"coupon_code": req.CouponCode,
		},
	}

	intentResp, err := h.providerClient.CreateIntent(intentReq)
	if err != nil {
		log.Error("failed to create payment intent from provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("payment provider error"))
		return
	}

	log.Info("success to create payment intent", slog.String("intent_id", intentResp.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clientSecret": intentResp.ClientSecret,
	}))
}
