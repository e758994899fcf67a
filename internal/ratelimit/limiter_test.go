package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
)

func TestLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	opts := Options{MaxCalls: 2, WindowMinutes: 15}

	t.Run("Sem janela anterior - cria uma nova e permite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRateLimitRepository(ctrl)
		repo.EXPECT().LatestWindow(ctx, "ACC001", "insights").Return(nil, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, w *domain.RateLimitWindow) error {
				assert.Equal(t, "ACC001", w.AccountID)
				assert.Equal(t, "insights", w.Endpoint)
				assert.Equal(t, 1, w.CallsCount)
				assert.Equal(t, 2, w.MaxCalls)
				assert.Equal(t, 15*time.Minute, w.WindowEnd.Sub(w.WindowStart))
				return nil
			},
		)

		allowed, err := NewLimiter(repo, opts).Allow(ctx, "ACC001", "insights")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Janela aberta com orçamento - incrementa e permite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		now := time.Now().UTC()
		repo := mocks.NewMockRateLimitRepository(ctrl)
		repo.EXPECT().LatestWindow(ctx, "ACC001", "insights").Return(&domain.RateLimitWindow{
			ID:          7,
			CallsCount:  1,
			MaxCalls:    2,
			WindowStart: now.Add(-time.Minute),
			WindowEnd:   now.Add(14 * time.Minute),
		}, nil)
		repo.EXPECT().Increment(ctx, int64(7)).Return(true, nil)

		allowed, err := NewLimiter(repo, opts).Allow(ctx, "ACC001", "insights")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Janela aberta com orçamento esgotado - nega", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		now := time.Now().UTC()
		repo := mocks.NewMockRateLimitRepository(ctrl)
		repo.EXPECT().LatestWindow(ctx, "ACC001", "insights").Return(&domain.RateLimitWindow{
			ID:          7,
			CallsCount:  2,
			MaxCalls:    2,
			WindowStart: now.Add(-time.Minute),
			WindowEnd:   now.Add(14 * time.Minute),
		}, nil)
		repo.EXPECT().Increment(ctx, int64(7)).Return(false, nil)

		allowed, err := NewLimiter(repo, opts).Allow(ctx, "ACC001", "insights")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Janela fechada - abre nova e permite mesmo esgotada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		now := time.Now().UTC()
		repo := mocks.NewMockRateLimitRepository(ctrl)
		repo.EXPECT().LatestWindow(ctx, "ACC001", "insights").Return(&domain.RateLimitWindow{
			ID:          7,
			CallsCount:  2,
			MaxCalls:    2,
			WindowStart: now.Add(-time.Hour),
			WindowEnd:   now.Add(-45 * time.Minute),
		}, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		allowed, err := NewLimiter(repo, opts).Allow(ctx, "ACC001", "insights")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Erro do repositório propaga e nega", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockRateLimitRepository(ctrl)
		repo.EXPECT().LatestWindow(ctx, "ACC001", "insights").Return(nil, errors.New("conexão perdida"))

		allowed, err := NewLimiter(repo, opts).Allow(ctx, "ACC001", "insights")
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestLimiter_Cleanup(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockRateLimitRepository(ctrl)
	repo.EXPECT().PurgeOlderThan(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), cutoff, time.Minute)
			return int64(3), nil
		},
	)

	deleted, err := NewLimiter(repo, Options{MaxCalls: 10, WindowMinutes: 1}).Cleanup(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
