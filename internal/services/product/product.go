// Package product содержит бизнес-логику жизненного цикла продукта:
// допуск голосов и жалоб, модерацию, квоту на публикацию и выборки.
package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Лимит страницы для публичного списка одобренных продуктов.
const acceptedPageLimit = 6

// Лимит витринных списков (избранное, популярное).
const showcaseLimit = 12

// Repository определяет методы для работы с продуктами в хранилище.
type Repository interface {
	// CreateProduct добавляет новый продукт и возвращает его ID.
	CreateProduct(ctx context.Context, product models.Product) (string, error)
	// ReadProduct возвращает продукт по ID.
	ReadProduct(ctx context.Context, id string) (*models.Product, error)
	// AddVote атомарно записывает голос, false если условие допуска не выполнилось.
	AddVote(ctx context.Context, id, email string) (bool, error)
	// AddReport атомарно записывает жалобу, симметрично AddVote.
	AddReport(ctx context.Context, id, email string) (bool, error)
	// ApplyModeration применяет решение модератора.
	ApplyModeration(ctx context.Context, id string, status string, makeFeatured bool) error
	// UpdateProduct обновляет описательные поля продукта.
	UpdateProduct(ctx context.Context, id string, req models.DummyProductUpdate) error
	// RemoveProduct удаляет продукт по ID.
	RemoveProduct(ctx context.Context, id string) error
	// ListProductsByOwner возвращает продукты владельца.
	ListProductsByOwner(ctx context.Context, ownerEmail string) ([]*models.Product, error)
	// ListAllProducts возвращает все продукты.
	ListAllProducts(ctx context.Context) ([]*models.Product, error)
	// ListAcceptedProducts возвращает страницу одобренных продуктов и их общее число.
	ListAcceptedProducts(ctx context.Context, search string, limit, offset int64) ([]*models.Product, int64, error)
	// ListFeaturedProducts возвращает избранные продукты.
	ListFeaturedProducts(ctx context.Context, limit int64) ([]*models.Product, error)
	// ListTrendingProducts возвращает продукты по убыванию голосов.
	ListTrendingProducts(ctx context.Context, limit int64) ([]*models.Product, error)
	// ListReportedProducts возвращает продукты с жалобами.
	ListReportedProducts(ctx context.Context) ([]*models.Product, error)
	// CountProductsByOwner подсчитывает продукты владельца.
	CountProductsByOwner(ctx context.Context, ownerEmail string) (int64, error)
	// CountProductsByStatus возвращает количество продуктов по статусам.
	CountProductsByStatus(ctx context.Context) (map[string]int64, error)
	// CountUsers подсчитывает зарегистрированных пользователей.
	CountUsers(ctx context.Context) (int64, error)
	// CountReviews подсчитывает отзывы.
	CountReviews(ctx context.Context) (int64, error)
}

// UserRepository описывает доступ к учётным записям, нужный квоте на публикацию.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Publisher описывает публикацию событий модерации в очередь уведомлений.
type Publisher interface {
	PublishModeration(event models.ModerationEvent) error
}

// Service реализует бизнес-логику работы с продуктами.
type Service struct {
	repo      Repository
	users     UserRepository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, users UserRepository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// Create публикует новый продукт от имени владельца.
//
// Владелец без подписки может держать не более одного продукта. Проверка
// квоты и вставка — два отдельных обращения к хранилищу: гонка двух
// одновременных публикаций на границе квоты сознательно допущена.
func (s *Service) Create(ctx context.Context, ownerEmail string, req models.DummyProduct) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrOwnerNotRegistered
		}
		return "", err
	}

	if !user.IsSubscribed {
		count, err := s.repo.CountProductsByOwner(ctx, ownerEmail)
		if err != nil {
			return "", err
		}
		if count >= 1 {
			return "", models.ErrQuotaExceeded
		}
	}

	product := models.Product{
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
		Description:  req.Description,
		OwnerName:    user.Name,
		OwnerEmail:   user.Email,
		OwnerImage:   user.PhotoURL,
		Tags:         req.Tags,
		ExternalLink: req.ExternalLink,
		Upvotes:      0,
		Voters:       []string{},
		Reports:      0,
		ReportedBy:   []string{},
		Status:       models.StatusPending,
		IsFeatured:   false,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return "", err
	}
	s.log.Info("created new product", slog.String("id", id), slog.String("owner", ownerEmail))
	return id, nil
}

// Upvote записывает голос пользователя за продукт.
//
// Классификация отказа выполняется по прочитанному состоянию, но сам голос
// применяется одним атомарным условным обновлением: если к моменту записи
// условие уже не выполняется (параллельный голос того же пользователя),
// операция завершается ErrAlreadyActed, счётчик не задваивается.
func (s *Service) Upvote(ctx context.Context, id, email string) error {
	product, err := s.repo.ReadProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerEmail == email {
		return models.ErrSelfInteraction
	}
	for _, voter := range product.Voters {
		if voter == email {
			return models.ErrAlreadyActed
		}
	}

	applied, err := s.repo.AddVote(ctx, id, email)
	if err != nil {
		return err
	}
	if !applied {
		return models.ErrAlreadyActed
	}
	s.log.Info("vote recorded", slog.String("id", id), slog.String("voter", email))
	return nil
}

// Report записывает жалобу пользователя на продукт, симметрично Upvote.
func (s *Service) Report(ctx context.Context, id, email string) error {
	product, err := s.repo.ReadProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerEmail == email {
		return models.ErrSelfInteraction
	}
	for _, reporter := range product.ReportedBy {
		if reporter == email {
			return models.ErrAlreadyActed
		}
	}

	applied, err := s.repo.AddReport(ctx, id, email)
	if err != nil {
		return err
	}
	if !applied {
		return models.ErrAlreadyActed
	}
	s.log.Info("report recorded", slog.String("id", id), slog.String("reporter", email))
	return nil
}

// Moderate применяет решение модератора к продукту.
//
// Accept и Reject переводят статус независимо от текущего значения,
// None и пустое действие статус не трогают. IsFeatured можно только
// установить, снять признак через эту операцию нельзя.
// После смены статуса владельцу отправляется уведомление.
func (s *Service) Moderate(ctx context.Context, id string, req models.DummyModeration) error {
	product, err := s.repo.ReadProduct(ctx, id)
	if err != nil {
		return err
	}

	var status string
	switch req.Action {
	case models.ActionAccept:
		status = models.StatusAccepted
	case models.ActionReject:
		status = models.StatusRejected
	}

	if err := s.repo.ApplyModeration(ctx, id, status, req.IsFeatured); err != nil {
		return err
	}
	s.log.Info("moderation applied", slog.String("id", id),
		slog.String("status", status), slog.Bool("featured", req.IsFeatured))

	if status != "" {
		event := models.ModerationEvent{
			ProductID:   id,
			ProductName: product.ProductName,
			OwnerEmail:  product.OwnerEmail,
			OwnerName:   product.OwnerName,
			Status:      status,
			DecidedAt:   time.Now().UTC(),
		}
		if err := s.publisher.PublishModeration(event); err != nil {
			s.log.Warn("failed to publish moderation event", slog.String("id", id), slog.Any("err", err))
		}
	}
	return nil
}

// Read возвращает продукт по ID.
func (s *Service) Read(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.ReadProduct(ctx, id)
}

// Update обновляет описательные поля продукта.
func (s *Service) Update(ctx context.Context, id string, req models.DummyProductUpdate) error {
	return s.repo.UpdateProduct(ctx, id, req)
}

// Remove удаляет продукт по ID.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.RemoveProduct(ctx, id)
}

// ListByOwner возвращает продукты владельца.
func (s *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Product, error) {
	return s.repo.ListProductsByOwner(ctx, ownerEmail)
}

// ListAll возвращает все продукты для панели модератора.
func (s *Service) ListAll(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListAllProducts(ctx)
}

// ListAccepted возвращает страницу одобренных продуктов с поиском по тегам.
func (s *Service) ListAccepted(ctx context.Context, search string, page int64) (*models.AcceptedPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * acceptedPageLimit

	items, total, err := s.repo.ListAcceptedProducts(ctx, search, acceptedPageLimit, offset)
	if err != nil {
		return nil, err
	}
	totalPages := (total + acceptedPageLimit - 1) / acceptedPageLimit
	return &models.AcceptedPage{
		Products:   items,
		TotalPages: totalPages,
	}, nil
}

// ListFeatured возвращает избранные продукты.
func (s *Service) ListFeatured(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListFeaturedProducts(ctx, showcaseLimit)
}

// ListTrending возвращает продукты по убыванию голосов.
func (s *Service) ListTrending(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListTrendingProducts(ctx, showcaseLimit)
}

// ListReported возвращает продукты с жалобами для панели модератора.
func (s *Service) ListReported(ctx context.Context) ([]*models.Product, error) {
	return s.repo.ListReportedProducts(ctx)
}

// Stats собирает агрегированную статистику платформы.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	byStatus, err := s.repo.CountProductsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	reviews, err := s.repo.CountReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	stats := &models.Stats{
		PendingProducts:  byStatus[models.StatusPending],
		AcceptedProducts: byStatus[models.StatusAccepted],
		RejectedProducts: byStatus[models.StatusRejected],
		TotalUsers:       users,
		TotalReviews:     reviews,
	}
	for _, count := range byStatus {
		stats.TotalProducts += count
	}
	return stats, nil
}
