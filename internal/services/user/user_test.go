package user

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) UpdateUserProfile(ctx context.Context, email, name, photoURL string) (int64, error) {
	args := m.Called(ctx, email, name, photoURL)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) SetUserRole(ctx context.Context, id, role string) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *RepoMock) SetUserSubscription(ctx context.Context, email string, isSubscribed bool, date *time.Time) error {
	return m.Called(ctx, email, isSubscribed, date).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Upsert(t *testing.T) {
	existingID := primitive.NewObjectID()
	existing := &models.User{
		ID:       existingID,
		Name:     "Alice",
		Email:    "alice@example.com",
		PhotoURL: "https://cdn.example.com/old.png",
		Role:     models.RoleModerator,
	}

	tests := []struct {
		name       string
		req        models.DummyUser
		setupMocks func(r *RepoMock)
		wantResult models.UpsertResult
		wantErr    bool
	}{
		{
			name: "новый пользователь создается с ролью user",
			req:  models.DummyUser{Name: "Bob", Email: "bob@example.com"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "bob@example.com").
					Return(nil, models.ErrUserNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Role == models.RoleUser && !u.IsSubscribed
				})).Return("user-1", nil).Once()
			},
			wantResult: models.UpsertCreated,
		},
		{
			name: "существующий профиль обновляется",
			req:  models.DummyUser{Name: "Alice Cooper", Email: "alice@example.com", PhotoURL: "https://cdn.example.com/new.png"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "alice@example.com").
					Return(existing, nil).Once()
				r.On("UpdateUserProfile", mock.Anything, "alice@example.com", "Alice Cooper", "https://cdn.example.com/new.png").
					Return(int64(1), nil).Once()
			},
			wantResult: models.UpsertUpdated,
		},
		{
			name: "пустые поля не затирают сохраненные",
			req:  models.DummyUser{Name: "Alice", Email: "alice@example.com"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "alice@example.com").
					Return(existing, nil).Once()
				r.On("UpdateUserProfile", mock.Anything, "alice@example.com", "Alice", "https://cdn.example.com/old.png").
					Return(int64(0), nil).Once()
			},
			wantResult: models.UpsertUnchanged,
		},
		{
			name: "некорректная дата подписки",
			req:  models.DummyUser{Name: "Bob", Email: "bob@example.com", IsSubscribed: true, SubscriptionDate: "yesterday"},
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByEmail", mock.Anything, "bob@example.com").
					Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := New(repo, newNoopLogger())
			result, _, err := svc.Upsert(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult, result)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_SetRole(t *testing.T) {
	t.Run("допустимая роль применяется", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserRole", mock.Anything, "user-1", models.RoleModerator).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		assert.NoError(t, svc.SetRole(context.Background(), "user-1", models.RoleModerator))
		repo.AssertExpectations(t)
	})

	t.Run("неизвестная роль отклоняется без обращения к хранилищу", func(t *testing.T) {
		repo := new(RepoMock)

		svc := New(repo, newNoopLogger())
		err := svc.SetRole(context.Background(), "user-1", "superuser")
		assert.ErrorIs(t, err, models.ErrInvalidRole)
		repo.AssertExpectations(t)
	})
}

func TestService_SetSubscription(t *testing.T) {
	t.Run("включение без даты фиксирует текущий момент", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserSubscription", mock.Anything, "alice@example.com", true,
			mock.MatchedBy(func(d *time.Time) bool {
				return d != nil && time.Since(*d) < time.Minute
			})).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		assert.NoError(t, svc.SetSubscription(context.Background(), "alice@example.com", true, ""))
		repo.AssertExpectations(t)
	})

	t.Run("выключение сбрасывает дату", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserSubscription", mock.Anything, "alice@example.com", false, (*time.Time)(nil)).
			Return(nil).Once()

		svc := New(repo, newNoopLogger())
		assert.NoError(t, svc.SetSubscription(context.Background(), "alice@example.com", false, "2026-01-15T10:00:00Z"))
		repo.AssertExpectations(t)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		repo := new(RepoMock)

		svc := New(repo, newNoopLogger())
		err := svc.SetSubscription(context.Background(), "alice@example.com", true, "not-a-date")
		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}
