// Package review реализует бизнес-логику работы с отзывами о продуктах.
//
// Отзыв привязывается к продукту по ID, email автора берётся из контекста
// авторизации и не принимается из тела запроса.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Repository описывает операции хранилища, необходимые сервису отзывов.
type Repository interface {
	CreateReview(ctx context.Context, review models.Review) (string, error)
	ListReviewsByProduct(ctx context.Context, productID string) ([]*models.Review, error)
	ReadProduct(ctx context.Context, id string) (*models.Product, error)
}

// Service реализует операции над отзывами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service с переданным хранилищем и логгером.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Add сохраняет отзыв к существующему продукту. Если продукт не найден,
// возвращает models.ErrProductNotFound.
func (s *Service) Add(ctx context.Context, productID, reviewerEmail string, req models.DummyReview) (string, error) {
	const op = "services.review.Add"

	if _, err := s.repo.ReadProduct(ctx, productID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	review := models.Review{
		ProductID:     productID,
		ReviewerName:  req.ReviewerName,
		ReviewerEmail: reviewerEmail,
		ReviewerImage: req.ReviewerImage,
		Rating:        req.Rating,
		Comment:       req.Comment,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("review created",
		slog.String("product_id", productID),
		slog.String("review_id", id))
	return id, nil
}

// ListByProduct возвращает все отзывы к продукту, новые первыми.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	const op = "services.review.ListByProduct"

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}
