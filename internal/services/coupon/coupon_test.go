package coupon

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCoupon(ctx context.Context, coupon models.Coupon) (string, error) {
	args := m.Called(ctx, coupon)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}
func (m *RepoMock) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Coupon), args.Error(1)
}
func (m *RepoMock) UpdateCoupon(ctx context.Context, id string, coupon models.Coupon) error {
	return m.Called(ctx, id, coupon).Error(0)
}
func (m *RepoMock) RemoveCoupon(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Validate(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(r *RepoMock)
		wantDiscount float64
		wantErr      error
	}{
		{
			name: "действующий купон возвращает скидку",
			setupMocks: func(r *RepoMock) {
				r.On("GetCouponByCode", mock.Anything, "SAVE20").Return(&models.Coupon{
					Code:       "SAVE20",
					Discount:   20,
					ExpiryDate: time.Now().Add(48 * time.Hour),
				}, nil).Once()
			},
			wantDiscount: 20,
		},
		{
			name: "просроченный купон",
			setupMocks: func(r *RepoMock) {
				r.On("GetCouponByCode", mock.Anything, "SAVE20").Return(&models.Coupon{
					Code:       "SAVE20",
					Discount:   20,
					ExpiryDate: time.Now().Add(-time.Hour),
				}, nil).Once()
			},
			wantErr: models.ErrCouponExpired,
		},
		{
			name: "неизвестный код",
			setupMocks: func(r *RepoMock) {
				r.On("GetCouponByCode", mock.Anything, "SAVE20").
					Return(nil, models.ErrCouponNotFound).Once()
			},
			wantErr: models.ErrCouponNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := New(repo, newNoopLogger())
			discount, err := svc.Validate(context.Background(), "SAVE20")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantDiscount, discount)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create(t *testing.T) {
	t.Run("купон действует весь последний день", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateCoupon", mock.Anything, mock.MatchedBy(func(c models.Coupon) bool {
			return c.Code == "LAUNCH10" &&
				c.ExpiryDate.Hour() == 23 && c.ExpiryDate.Minute() == 59
		})).Return("coupon-1", nil).Once()

		svc := New(repo, newNoopLogger())
		id, err := svc.Create(context.Background(), models.DummyCoupon{
			Code:       "LAUNCH10",
			Discount:   10,
			ExpiryDate: "2026-12-31",
		})
		assert.NoError(t, err)
		assert.Equal(t, "coupon-1", id)
		repo.AssertExpectations(t)
	})

	t.Run("некорректная дата окончания", func(t *testing.T) {
		repo := new(RepoMock)

		svc := New(repo, newNoopLogger())
		_, err := svc.Create(context.Background(), models.DummyCoupon{
			Code:       "LAUNCH10",
			Discount:   10,
			ExpiryDate: "31-12-2026",
		})
		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}
