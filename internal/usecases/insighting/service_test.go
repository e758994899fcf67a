package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
	cachemocks "github.com/admetrica/adsync-api/internal/usecases/caching/mocks"
)

func seriesFilters() *domain.SeriesFilters {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	return &domain.SeriesFilters{
		AccountID:   "ACC001",
		EntityLevel: domain.EntityLevelCampaign,
		Resolution:  domain.ResolutionDaily,
		StartDate:   &start,
		EndDate:     &end,
	}
}

func TestService_GetMetricSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss cai para o banco, agrega totais e repovoa o cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotRepo := repomocks.NewMockMetricSnapshotRepository(ctrl)
		cache := cachemocks.NewMockCache(ctrl)
		filters := seriesFilters()

		cache.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(false)
		snapshotRepo.EXPECT().Series(ctx, filters).Return([]*domain.MetricSnapshot{
			{RawMetrics: domain.RawMetrics{Impressions: 100, Spend: 10}},
			{RawMetrics: domain.RawMetrics{Impressions: 200, Spend: 5}},
		}, nil)
		cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), 10*time.Minute, &caching.Tags{
			ResourceType: "account",
			ResourceID:   "ACC001",
		})

		response, err := NewService(snapshotRepo, cache, 10*time.Minute).GetMetricSeries(ctx, filters)
		assert.NoError(t, err)
		assert.False(t, response.FromCache)
		assert.Len(t, response.Snapshots, 2)
		assert.Equal(t, int64(300), response.Totals.Impressions)
		assert.Equal(t, 15.0, response.Totals.Spend)
	})

	t.Run("Hit serve do cache sem tocar o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotRepo := repomocks.NewMockMetricSnapshotRepository(ctrl)
		cache := cachemocks.NewMockCache(ctrl)
		filters := seriesFilters()

		cache.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, out interface{}) bool {
				response := out.(*domain.MetricSeriesResponse)
				response.AccountID = "ACC001"
				return true
			},
		)

		response, err := NewService(snapshotRepo, cache, time.Minute).GetMetricSeries(ctx, filters)
		assert.NoError(t, err)
		assert.True(t, response.FromCache)
		assert.Equal(t, "ACC001", response.AccountID)
	})

	t.Run("Erro do banco propaga", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotRepo := repomocks.NewMockMetricSnapshotRepository(ctrl)
		cache := cachemocks.NewMockCache(ctrl)
		filters := seriesFilters()

		cache.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(false)
		snapshotRepo.EXPECT().Series(ctx, filters).Return(nil, errors.New("timeout"))

		_, err := NewService(snapshotRepo, cache, time.Minute).GetMetricSeries(ctx, filters)
		assert.Error(t, err)
	})

	t.Run("Filtros inválidos são rejeitados antes de qualquer leitura", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(repomocks.NewMockMetricSnapshotRepository(ctrl), cachemocks.NewMockCache(ctrl), time.Minute)

		_, err := service.GetMetricSeries(ctx, nil)
		assert.Error(t, err)

		inverted := seriesFilters()
		inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
		_, err = service.GetMetricSeries(ctx, inverted)
		assert.Error(t, err)
	})
}
