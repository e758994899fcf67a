package syncing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	platformmocks "github.com/admetrica/adsync-api/infrastructure/integrator/platform/mocks"
	repomocks "github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
	ratelimitmocks "github.com/admetrica/adsync-api/internal/ratelimit/mocks"
	cachemocks "github.com/admetrica/adsync-api/internal/usecases/caching/mocks"
	"github.com/admetrica/adsync-api/internal/usecases/loading"
	loadingmocks "github.com/admetrica/adsync-api/internal/usecases/loading/mocks"
	"github.com/admetrica/adsync-api/pkg/retry"
)

type fixture struct {
	accountRepo *repomocks.MockAccountRepository
	runRepo     *repomocks.MockSyncRunRepository
	loader      *loadingmocks.MockLoader
	limiter     *ratelimitmocks.MockLimiter
	cache       *cachemocks.MockCache
	connector   *platformmocks.MockConnector
	transformer *platformmocks.MockTransformer
	service     *Service
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		accountRepo: repomocks.NewMockAccountRepository(ctrl),
		runRepo:     repomocks.NewMockSyncRunRepository(ctrl),
		loader:      loadingmocks.NewMockLoader(ctrl),
		limiter:     ratelimitmocks.NewMockLimiter(ctrl),
		cache:       cachemocks.NewMockCache(ctrl),
		connector:   platformmocks.NewMockConnector(ctrl),
		transformer: platformmocks.NewMockTransformer(ctrl),
	}

	f.service = NewService(
		f.accountRepo,
		f.runRepo,
		f.loader,
		f.limiter,
		f.cache,
		map[domain.Platform]platform.Connector{domain.PlatformMeta: f.connector},
		Options{PageSize: 50, MaxPages: 5, LookbackDays: 2, Retry: retry.Options{MaxAttempts: 1}},
	)

	return f
}

func (f *fixture) expectAccount() *domain.Account {
	account := &domain.Account{
		ID:       "ACC001",
		Platform: domain.PlatformMeta,
		Status:   domain.AccountStatusActive,
	}
	f.accountRepo.EXPECT().GetByID(gomock.Any(), "ACC001").Return(account, nil)
	return account
}

func (f *fixture) expectRunLifecycle() {
	f.runRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *domain.SyncRun) error {
			run.ID = "RUN001"
			run.StartedAt = time.Now().UTC()
			return nil
		},
	)
	f.runRepo.EXPECT().MarkInProgress(gomock.Any(), "RUN001").Return(nil)
}

func TestService_Sync(t *testing.T) {
	ctx := context.Background()
	campaignsOnly := domain.SyncOptions{EntityLevels: []domain.EntityLevel{domain.EntityLevelCampaign}}

	t.Run("Run sem falhas termina em success e avança o last_synced_at", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		account := f.expectAccount()
		f.expectRunLifecycle()

		raw := platform.RawCampaign{ExternalID: "EXT1", Name: "Campanha 1", Status: "ACTIVE", Level: domain.EntityLevelCampaign}
		item := &platform.NormalizedItem{Campaign: &domain.Campaign{ExternalID: "EXT1"}}

		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "list:campaign").Return(true, nil)
		f.connector.EXPECT().List(gomock.Any(), account, domain.EntityLevelCampaign, gomock.Any()).
			Return(&platform.Page{Items: []platform.RawCampaign{raw}}, nil)
		f.connector.EXPECT().Transformer().Return(f.transformer).AnyTimes()
		f.transformer.EXPECT().TransformBatch(gomock.Any(), gomock.Any()).
			Return(&platform.BatchTransformResult{Items: []*platform.NormalizedItem{item}})
		f.loader.EXPECT().LoadBatch(gomock.Any(), gomock.Any()).
			Return(&loading.BatchResult{Total: 1, Success: 1, Created: 1})

		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "insights").Return(true, nil)
		f.connector.EXPECT().GetInsights(gomock.Any(), account, "EXT1", gomock.Any()).
			Return([]platform.RawMetricRow{{EntityExternalID: "EXT1"}}, nil)
		f.transformer.EXPECT().Transform(raw, gomock.Any(), gomock.Any()).Return(item, nil)
		f.loader.EXPECT().Load(gomock.Any(), item).Return(&loading.LoadResult{CampaignID: "CMP1", Snapshots: 1}, nil)

		f.runRepo.EXPECT().Finalize(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, run *domain.SyncRun) error {
				assert.Equal(t, domain.SyncRunStatusSuccess, run.Status)
				assert.NotNil(t, run.FinishedAt)
				return nil
			},
		)
		f.accountRepo.EXPECT().AdvanceLastSyncedAt(gomock.Any(), "ACC001", gomock.Any()).Return(nil)
		f.cache.EXPECT().InvalidateByResource(gomock.Any(), "account", "ACC001").Return(int64(1))

		run, err := f.service.Sync(ctx, "ACC001", campaignsOnly)
		assert.NoError(t, err)
		assert.Equal(t, domain.SyncRunStatusSuccess, run.Status)
		assert.Equal(t, 2, run.Processed)
		assert.Zero(t, run.Failed)
	})

	t.Run("Falha em parte dos itens termina em partial_success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		account := f.expectAccount()
		f.expectRunLifecycle()

		ok := platform.RawCampaign{ExternalID: "EXT1", Level: domain.EntityLevelCampaign}
		broken := platform.RawCampaign{ExternalID: "EXT2", Level: domain.EntityLevelCampaign}
		item := &platform.NormalizedItem{Campaign: &domain.Campaign{ExternalID: "EXT1"}}

		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "list:campaign").Return(true, nil)
		f.connector.EXPECT().List(gomock.Any(), account, domain.EntityLevelCampaign, gomock.Any()).
			Return(&platform.Page{Items: []platform.RawCampaign{ok, broken}}, nil)
		f.connector.EXPECT().Transformer().Return(f.transformer).AnyTimes()
		f.transformer.EXPECT().TransformBatch(gomock.Any(), gomock.Any()).
			Return(&platform.BatchTransformResult{
				Items:  []*platform.NormalizedItem{item},
				Errors: []platform.ItemError{{ExternalID: "EXT2", Error: "spend negativo"}},
			})
		f.loader.EXPECT().LoadBatch(gomock.Any(), gomock.Any()).
			Return(&loading.BatchResult{Total: 1, Success: 1, Updated: 1})

		// apenas o item válido chega ao estágio de métricas
		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "insights").Return(true, nil)
		f.connector.EXPECT().GetInsights(gomock.Any(), account, "EXT1", gomock.Any()).
			Return([]platform.RawMetricRow{}, nil)
		f.transformer.EXPECT().Transform(ok, gomock.Any(), gomock.Any()).Return(item, nil)
		f.loader.EXPECT().Load(gomock.Any(), item).Return(&loading.LoadResult{CampaignID: "CMP1"}, nil)

		f.runRepo.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().InvalidateByResource(gomock.Any(), "account", "ACC001").Return(int64(0))

		run, err := f.service.Sync(ctx, "ACC001", campaignsOnly)
		assert.NoError(t, err)
		assert.Equal(t, domain.SyncRunStatusPartialSuccess, run.Status)
		assert.Equal(t, 1, run.Failed)
	})

	t.Run("Erro de autorização aborta os estágios e finaliza como failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		account := f.expectAccount()
		f.expectRunLifecycle()

		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "list:campaign").Return(true, nil)
		f.connector.EXPECT().List(gomock.Any(), account, domain.EntityLevelCampaign, gomock.Any()).
			Return(nil, &platform.RemoteError{Platform: domain.PlatformMeta, StatusCode: 401, Message: "token expirado"})

		f.runRepo.EXPECT().Finalize(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, run *domain.SyncRun) error {
				assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
				assert.NotNil(t, run.ErrorMessage)
				assert.Contains(t, *run.ErrorMessage, "autorização")
				return nil
			},
		)

		run, err := f.service.Sync(ctx, "ACC001", campaignsOnly)
		assert.NoError(t, err)
		assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	})

	t.Run("Orçamento de chamadas esgotado finaliza como failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.expectAccount()
		f.expectRunLifecycle()

		f.limiter.EXPECT().Allow(gomock.Any(), "ACC001", "list:campaign").Return(false, nil)
		f.runRepo.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return(nil)

		run, err := f.service.Sync(ctx, "ACC001", campaignsOnly)
		assert.NoError(t, err)
		assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	})

	t.Run("Conta inexistente retorna erro sem criar run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.accountRepo.EXPECT().GetByID(gomock.Any(), "ACC999").Return(nil, nil)

		_, err := f.service.Sync(ctx, "ACC999", campaignsOnly)
		assert.Error(t, err)
	})

	t.Run("Plataforma sem conector registrado finaliza como failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.accountRepo.EXPECT().GetByID(gomock.Any(), "ACC002").Return(&domain.Account{
			ID:       "ACC002",
			Platform: domain.PlatformGoogleAds,
		}, nil)
		f.runRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, run *domain.SyncRun) error {
				run.ID = "RUN002"
				return nil
			},
		)
		f.runRepo.EXPECT().MarkInProgress(gomock.Any(), "RUN002").Return(nil)
		f.runRepo.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return(nil)

		run, err := f.service.Sync(ctx, "ACC002", campaignsOnly)
		assert.NoError(t, err)
		assert.Equal(t, domain.SyncRunStatusFailed, run.Status)
	})
}
