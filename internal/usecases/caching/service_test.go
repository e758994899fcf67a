package caching

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

type cachedValue struct {
	Total float64 `json:"total"`
}

func TestBuildKey(t *testing.T) {
	filters := map[string]string{"account_id": "ACC001", "from": "2024-03-01"}
	reordered := map[string]string{"from": "2024-03-01", "account_id": "ACC001"}

	t.Run("Mesmos filtros em qualquer ordem geram a mesma chave", func(t *testing.T) {
		assert.Equal(t,
			BuildKey("metric_series", domain.ResolutionDaily, filters),
			BuildKey("metric_series", domain.ResolutionDaily, reordered),
		)
	})

	t.Run("Filtros diferentes geram chaves diferentes", func(t *testing.T) {
		other := map[string]string{"account_id": "ACC002", "from": "2024-03-01"}
		assert.NotEqual(t,
			BuildKey("metric_series", domain.ResolutionDaily, filters),
			BuildKey("metric_series", domain.ResolutionDaily, other),
		)
	})

	t.Run("Chave carrega o tipo de recurso e a resolução como prefixo", func(t *testing.T) {
		key := BuildKey("metric_series", domain.ResolutionHourly, nil)
		assert.Contains(t, key, "metric_series:hourly:")
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Entrada válida retorna hit e registra o acesso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().Get(ctx, "k1").Return(&domain.CacheEntry{
			Key:       "k1",
			Payload:   []byte(`{"total": 42.5}`),
			ExpiresAt: time.Now().UTC().Add(time.Minute),
		}, nil)
		repo.EXPECT().Touch(ctx, "k1").Return(nil)

		var out cachedValue
		hit := NewService(repo, time.Minute).Get(ctx, "k1", &out)
		assert.True(t, hit)
		assert.Equal(t, 42.5, out.Total)
	})

	t.Run("Entrada expirada vira miss e é removida na hora", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().Get(ctx, "k1").Return(&domain.CacheEntry{
			Key:       "k1",
			Payload:   []byte(`{"total": 1}`),
			ExpiresAt: time.Now().UTC().Add(-time.Second),
		}, nil)
		repo.EXPECT().Delete(ctx, "k1").Return(nil)

		var out cachedValue
		assert.False(t, NewService(repo, time.Minute).Get(ctx, "k1", &out))
	})

	t.Run("Erro do repositório degrada para miss sem propagar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().Get(ctx, "k1").Return(nil, errors.New("conexão perdida"))

		var out cachedValue
		assert.False(t, NewService(repo, time.Minute).Get(ctx, "k1", &out))
	})

	t.Run("Ausente é miss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().Get(ctx, "k1").Return(nil, nil)

		var out cachedValue
		assert.False(t, NewService(repo, time.Minute).Get(ctx, "k1", &out))
	})
}

func TestService_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Grava payload serializado com TTL e tags", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry *domain.CacheEntry) error {
				assert.Equal(t, "k1", entry.Key)
				assert.JSONEq(t, `{"total": 7}`, string(entry.Payload))
				assert.WithinDuration(t, time.Now().UTC().Add(10*time.Minute), entry.ExpiresAt, time.Minute)
				assert.Equal(t, "account", *entry.ResourceType)
				assert.Equal(t, "ACC001", *entry.ResourceID)
				return nil
			},
		)

		NewService(repo, time.Minute).Set(ctx, "k1", cachedValue{Total: 7}, 10*time.Minute,
			&Tags{ResourceType: "account", ResourceID: "ACC001"})
	})

	t.Run("Erro de escrita é engolido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockCacheEntryRepository(ctrl)
		repo.EXPECT().SaveOrUpdate(ctx, gomock.Any()).Return(errors.New("disco cheio"))

		NewService(repo, time.Minute).Set(ctx, "k1", cachedValue{}, 0, nil)
	})
}

func TestService_Invalidation(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockCacheEntryRepository(ctrl)
	service := NewService(repo, time.Minute)

	repo.EXPECT().DeleteByPattern(ctx, "ACC001").Return(int64(4), nil)
	assert.Equal(t, int64(4), service.InvalidateByPattern(ctx, "ACC001"))

	repo.EXPECT().DeleteByResource(ctx, "account", "ACC001").Return(int64(2), nil)
	assert.Equal(t, int64(2), service.InvalidateByResource(ctx, "account", "ACC001"))

	repo.EXPECT().DeleteByPattern(ctx, "x").Return(int64(0), errors.New("timeout"))
	assert.Zero(t, service.InvalidateByPattern(ctx, "x"))

	repo.EXPECT().DeleteExpired(ctx, gomock.Any()).Return(int64(9), nil)
	deleted, err := service.Cleanup(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), deleted)
}
