// Package coupon содержит бизнес-логику купонов: проверку действительности
// кода и административное управление купонами.
package coupon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Формат даты окончания действия купона в запросах.
const expiryDateLayout = "2006-01-02"

// Repository описывает контракт для работы с купонами в хранилище.
type Repository interface {
	// CreateCoupon сохраняет новый купон и возвращает его ID.
	CreateCoupon(ctx context.Context, coupon models.Coupon) (string, error)
	// GetCouponByCode возвращает купон по коду.
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	// ListCoupons возвращает все купоны.
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
	// UpdateCoupon обновляет купон по ID.
	UpdateCoupon(ctx context.Context, id string, coupon models.Coupon) error
	// RemoveCoupon удаляет купон по ID.
	RemoveCoupon(ctx context.Context, id string) error
}

// Service реализует бизнес-логику купонов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Validate проверяет код купона и возвращает размер скидки в процентах.
//
// Отсутствующий код и истёкший срок — разные ошибки (ErrCouponNotFound
// и ErrCouponExpired), их объединение в один ответ — дело вызывающей
// стороны. Проверка не расходует купон: он многоразовый до истечения срока.
func (s *Service) Validate(ctx context.Context, code string) (float64, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if time.Now().After(coupon.ExpiryDate) {
		return 0, models.ErrCouponExpired
	}
	return coupon.Discount, nil
}

// Create сохраняет новый купон, дата окончания принимается строкой 2006-01-02.
func (s *Service) Create(ctx context.Context, req models.DummyCoupon) (string, error) {
	coupon, err := couponFromRequest(req)
	if err != nil {
		return "", err
	}
	id, err := s.repo.CreateCoupon(ctx, *coupon)
	if err != nil {
		return "", err
	}
	s.log.Info("coupon created", slog.String("code", req.Code), slog.String("id", id))
	return id, nil
}

// List возвращает все купоны.
func (s *Service) List(ctx context.Context) ([]*models.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

// Update обновляет купон по ID.
func (s *Service) Update(ctx context.Context, id string, req models.DummyCoupon) error {
	coupon, err := couponFromRequest(req)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateCoupon(ctx, id, *coupon); err != nil {
		return err
	}
	s.log.Info("coupon updated", slog.String("id", id))
	return nil
}

// Remove удаляет купон по ID.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.RemoveCoupon(ctx, id); err != nil {
		return err
	}
	s.log.Info("coupon removed", slog.String("id", id))
	return nil
}

func couponFromRequest(req models.DummyCoupon) (*models.Coupon, error) {
	expiry, err := time.Parse(expiryDateLayout, req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry date: %w", err)
	}
	// Купон действует включительно весь последний день.
	expiry = expiry.Add(24*time.Hour - time.Second)
	return &models.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
		ExpiryDate:  expiry,
	}, nil
}
