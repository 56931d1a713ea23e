// Package user содержит бизнес-логику учётных записей: синхронизацию профиля
// при входе, смену роли и управление состоянием подписки.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Repository описывает контракт для работы с пользователями в хранилище.
type Repository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserProfile обновляет имя и аватар, возвращает число изменённых документов.
	UpdateUserProfile(ctx context.Context, email, name, photoURL string) (int64, error)
	// SetUserRole обновляет роль пользователя по ID.
	SetUserRole(ctx context.Context, id, role string) error
	// SetUserSubscription обновляет состояние подписки по email.
	SetUserSubscription(ctx context.Context, email string, isSubscribed bool, date *time.Time) error
}

// Service реализует бизнес-логику учётных записей.
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

// Upsert синхронизирует профиль пользователя при входе.
//
// Для существующей записи обновляются только имя и аватар, причём пустые
// значения из запроса не затирают сохранённые. Роль и подписка через этот
// путь не меняются никогда — это синхронизация профиля, а не повышение прав.
// Для новой записи роль по умолчанию user, подписка выключена, если явно
// не передано иное.
func (s *Service) Upsert(ctx context.Context, req models.DummyUser) (models.UpsertResult, string, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return "", "", err
	}

	if existing != nil {
		name := existing.Name
		if req.Name != "" {
			name = req.Name
		}
		photoURL := existing.PhotoURL
		if req.PhotoURL != "" {
			photoURL = req.PhotoURL
		}

		modified, err := s.repo.UpdateUserProfile(ctx, req.Email, name, photoURL)
		if err != nil {
			return "", "", err
		}
		if modified == 0 {
			return models.UpsertUnchanged, existing.ID.Hex(), nil
		}
		s.log.Info("user profile updated", slog.String("email", req.Email))
		return models.UpsertUpdated, existing.ID.Hex(), nil
	}

	var subscriptionDate *time.Time
	if req.SubscriptionDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.SubscriptionDate)
		if err != nil {
			return "", "", fmt.Errorf("invalid subscription date: %w", err)
		}
		subscriptionDate = &parsed
	}

	user := models.User{
		Name:             req.Name,
		Email:            req.Email,
		PhotoURL:         req.PhotoURL,
		Role:             models.RoleUser,
		IsSubscribed:     req.IsSubscribed,
		SubscriptionDate: subscriptionDate,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return "", "", err
	}
	s.log.Info("user registered", slog.String("email", req.Email), slog.String("id", id))
	return models.UpsertCreated, id, nil
}

// Get возвращает пользователя по email.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// SetRole меняет роль пользователя. Повторное назначение той же роли
// не считается ошибкой.
func (s *Service) SetRole(ctx context.Context, id, role string) error {
	if !models.ValidRole(role) {
		return models.ErrInvalidRole
	}
	if err := s.repo.SetUserRole(ctx, id, role); err != nil {
		return err
	}
	s.log.Info("user role updated", slog.String("id", id), slog.String("role", role))
	return nil
}

// SetSubscription меняет состояние подписки пользователя.
//
// При включении подписки без явной даты фиксируется текущий момент,
// при выключении дата сбрасывается. Повторное применение того же
// значения — no-op без ошибки.
func (s *Service) SetSubscription(ctx context.Context, email string, isSubscribed bool, dateStr string) error {
	var date *time.Time
	if isSubscribed {
		if dateStr != "" {
			parsed, err := time.Parse(time.RFC3339, dateStr)
			if err != nil {
				return fmt.Errorf("invalid subscription date: %w", err)
			}
			date = &parsed
		} else {
			now := time.Now().UTC()
			date = &now
		}
	}
	if err := s.repo.SetUserSubscription(ctx, email, isSubscribed, date); err != nil {
		return err
	}
	s.log.Info("user subscription updated", slog.String("email", email), slog.Bool("subscribed", isSubscribed))
	return nil
}
