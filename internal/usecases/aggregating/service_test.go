package aggregating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
)

func hourlyRow(hour int, impressions, clicks int64, spend, ctr float64) *domain.MetricSnapshot {
	return &domain.MetricSnapshot{
		AccountID:   "ACC001",
		EntityLevel: domain.EntityLevelCampaign,
		EntityID:    "CMP1",
		Resolution:  domain.ResolutionHourly,
		BucketStart: time.Date(2024, 3, 10, hour, 0, 0, 0, time.UTC),
		RawMetrics: domain.RawMetrics{
			Impressions: impressions,
			Clicks:      clicks,
			Spend:       spend,
		},
		DerivedMetrics: domain.DerivedMetrics{CTR: ctr},
	}
}

func TestService_AggregateHourlyToDaily(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC)
	dayStart := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("Soma contadores e tira média das razões", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockMetricSnapshotRepository(ctrl)
		group := repository.EntityRef{AccountID: "ACC001", EntityLevel: domain.EntityLevelCampaign, EntityID: "CMP1"}

		repo.EXPECT().DistinctEntities(ctx, domain.ResolutionHourly, dayStart, dayEnd).
			Return([]repository.EntityRef{group}, nil)
		repo.EXPECT().ListForEntity(ctx, domain.ResolutionHourly, domain.EntityLevelCampaign, "CMP1", dayStart, dayEnd).
			Return([]*domain.MetricSnapshot{
				hourlyRow(9, 1000, 20, 10.50, 2.0),
				hourlyRow(10, 3000, 30, 4.50, 1.0),
			}, nil)
		repo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *domain.MetricSnapshot) error {
				assert.Equal(t, domain.ResolutionDaily, s.Resolution)
				assert.Equal(t, dayStart, s.BucketStart)
				assert.Equal(t, int64(4000), s.Impressions)
				assert.Equal(t, int64(50), s.Clicks)
				assert.Equal(t, 15.0, s.Spend)
				// média aritmética das razões por hora, não recálculo das somas
				assert.Equal(t, 1.5, s.CTR)
				return nil
			},
		)

		summary, err := NewService(repo).AggregateHourlyToDaily(ctx, date)
		assert.NoError(t, err)
		assert.Equal(t, &Summary{Groups: 1, Aggregated: 1}, summary)
	})

	t.Run("Falha de um grupo não aborta os irmãos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockMetricSnapshotRepository(ctrl)
		broken := repository.EntityRef{AccountID: "ACC001", EntityLevel: domain.EntityLevelCampaign, EntityID: "CMP1"}
		healthy := repository.EntityRef{AccountID: "ACC001", EntityLevel: domain.EntityLevelCampaign, EntityID: "CMP2"}

		repo.EXPECT().DistinctEntities(ctx, domain.ResolutionHourly, dayStart, dayEnd).
			Return([]repository.EntityRef{broken, healthy}, nil)
		repo.EXPECT().ListForEntity(ctx, domain.ResolutionHourly, domain.EntityLevelCampaign, "CMP1", dayStart, dayEnd).
			Return(nil, errors.New("timeout"))
		repo.EXPECT().ListForEntity(ctx, domain.ResolutionHourly, domain.EntityLevelCampaign, "CMP2", dayStart, dayEnd).
			Return([]*domain.MetricSnapshot{hourlyRow(9, 100, 1, 1.0, 1.0)}, nil)
		repo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		summary, err := NewService(repo).AggregateHourlyToDaily(ctx, date)
		assert.NoError(t, err)
		assert.Equal(t, &Summary{Groups: 2, Aggregated: 1, Failed: 1}, summary)
	})

	t.Run("Erro na enumeração de grupos aborta a rodada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockMetricSnapshotRepository(ctrl)
		repo.EXPECT().DistinctEntities(ctx, domain.ResolutionHourly, dayStart, dayEnd).
			Return(nil, errors.New("conexão perdida"))

		_, err := NewService(repo).AggregateHourlyToDaily(ctx, date)
		assert.Error(t, err)
	})
}

func TestService_AggregateDailyToMonthly(t *testing.T) {
	ctx := context.Background()
	monthStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMetricSnapshotRepository(ctrl)
	group := repository.EntityRef{AccountID: "ACC001", EntityLevel: domain.EntityLevelAdSet, EntityID: "ADS1"}

	repo.EXPECT().DistinctEntities(ctx, domain.ResolutionDaily, monthStart, monthEnd).
		Return([]repository.EntityRef{group}, nil)
	repo.EXPECT().ListForEntity(ctx, domain.ResolutionDaily, domain.EntityLevelAdSet, "ADS1", monthStart, monthEnd).
		Return([]*domain.MetricSnapshot{
			{RawMetrics: domain.RawMetrics{Spend: 100}, DerivedMetrics: domain.DerivedMetrics{ROAS: 2.0}},
			{RawMetrics: domain.RawMetrics{Spend: 200}, DerivedMetrics: domain.DerivedMetrics{ROAS: 4.0}},
		}, nil)
	repo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.MetricSnapshot) error {
			assert.Equal(t, domain.ResolutionMonthly, s.Resolution)
			assert.Equal(t, monthStart, s.BucketStart)
			assert.Equal(t, 300.0, s.Spend)
			assert.Equal(t, 3.0, s.ROAS)
			return nil
		},
	)

	summary, err := NewService(repo).AggregateDailyToMonthly(ctx, 2024, time.February)
	assert.NoError(t, err)
	assert.Equal(t, &Summary{Groups: 1, Aggregated: 1}, summary)
}
