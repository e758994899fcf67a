package loading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
)

func newItem(externalID string, buckets ...time.Time) *platform.NormalizedItem {
	item := &platform.NormalizedItem{
		Campaign: &domain.Campaign{
			Platform:   domain.PlatformMeta,
			ExternalID: externalID,
			AccountID:  "ACC001",
			Name:       "Campanha " + externalID,
			Status:     domain.CampaignStatusActive,
		},
	}

	for _, bucket := range buckets {
		item.Snapshots = append(item.Snapshots, &domain.MetricSnapshot{
			EntityLevel: domain.EntityLevelCampaign,
			EntityID:    externalID,
			Resolution:  domain.ResolutionHourly,
			BucketStart: bucket,
		})
	}

	return item
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Snapshot recebe o id interno do upsert da mesma chamada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		campaignRepo := mocks.NewMockCampaignRepository(ctrl)
		snapshotRepo := mocks.NewMockMetricSnapshotRepository(ctrl)

		bucket := time.Date(2024, 3, 10, 13, 45, 12, 0, time.UTC)
		item := newItem("EXT001", bucket)

		campaignRepo.EXPECT().Upsert(ctx, item.Campaign).
			Return(&repository.UpsertResult{ID: "CMP123", Inserted: true}, nil)
		snapshotRepo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *domain.MetricSnapshot) error {
				assert.Equal(t, "CMP123", s.EntityID)
				assert.Equal(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC), s.BucketStart)
				return nil
			},
		)

		result, err := NewService(campaignRepo, snapshotRepo).Load(ctx, item)
		assert.NoError(t, err)
		assert.Equal(t, "CMP123", result.CampaignID)
		assert.True(t, result.Created)
		assert.Equal(t, 1, result.Snapshots)
	})

	t.Run("Item sem campanha é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewService(mocks.NewMockCampaignRepository(ctrl), mocks.NewMockMetricSnapshotRepository(ctrl))

		_, err := service.Load(ctx, &platform.NormalizedItem{})
		assert.Error(t, err)
	})
}

func TestService_LoadBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Falha de um item não interrompe os demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		campaignRepo := mocks.NewMockCampaignRepository(ctrl)
		snapshotRepo := mocks.NewMockMetricSnapshotRepository(ctrl)

		ok1 := newItem("EXT001")
		broken := newItem("EXT002")
		ok2 := newItem("EXT003")

		campaignRepo.EXPECT().Upsert(ctx, ok1.Campaign).
			Return(&repository.UpsertResult{ID: "CMP1", Inserted: true}, nil)
		campaignRepo.EXPECT().Upsert(ctx, broken.Campaign).
			Return(nil, errors.New("violação de restrição"))
		campaignRepo.EXPECT().Upsert(ctx, ok2.Campaign).
			Return(&repository.UpsertResult{ID: "CMP3", Inserted: false}, nil)

		result := NewService(campaignRepo, snapshotRepo).LoadBatch(ctx, []*platform.NormalizedItem{ok1, broken, ok2})

		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Updated)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, "EXT002", result.Errors[0].ExternalID)
	})

	t.Run("Falha na escrita de snapshot conta como falha do item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		campaignRepo := mocks.NewMockCampaignRepository(ctrl)
		snapshotRepo := mocks.NewMockMetricSnapshotRepository(ctrl)

		item := newItem("EXT001", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

		campaignRepo.EXPECT().Upsert(ctx, item.Campaign).
			Return(&repository.UpsertResult{ID: "CMP1", Inserted: false}, nil)
		snapshotRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("deadlock"))

		result := NewService(campaignRepo, snapshotRepo).LoadBatch(ctx, []*platform.NormalizedItem{item})

		assert.Equal(t, 1, result.Failed)
		assert.Zero(t, result.Success)
	})
}
