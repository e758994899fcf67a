package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/admetrica/adsync-api/infrastructure/repository/mocks"
	"github.com/admetrica/adsync-api/internal/domain"
	ratelimitmocks "github.com/admetrica/adsync-api/internal/ratelimit/mocks"
	"github.com/admetrica/adsync-api/internal/usecases/aggregating"
	aggregatingmocks "github.com/admetrica/adsync-api/internal/usecases/aggregating/mocks"
	cachingmocks "github.com/admetrica/adsync-api/internal/usecases/caching/mocks"
	syncingmocks "github.com/admetrica/adsync-api/internal/usecases/syncing/mocks"
)

func TestPlatformSyncService_syncAllAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := repomocks.NewMockAccountRepository(ctrl)
	mockSyncer := syncingmocks.NewMockSyncer(ctrl)

	service := &PlatformSyncService{
		config: PlatformSyncConfig{
			LookbackDays:      3,
			MaxConcurrentJobs: 2,
			SyncEnabled:       true,
		},
		accountRepo: mockAccountRepo,
		syncer:      mockSyncer,
	}

	accounts := []*domain.Account{
		{ID: "ACC001", Platform: domain.PlatformMeta, Name: "Conta Meta"},
		{ID: "ACC002", Platform: domain.PlatformGoogleAds, Name: "Conta Google"},
	}

	t.Run("Sincroniza todas as contas ativas com run incremental", func(t *testing.T) {
		mockAccountRepo.EXPECT().
			List(gomock.Any(), []domain.AccountStatus{domain.AccountStatusActive}).
			Return(accounts, nil)

		for _, acc := range accounts {
			mockSyncer.EXPECT().
				Sync(gomock.Any(), acc.ID, domain.SyncOptions{
					RunType:      domain.SyncRunTypeIncremental,
					LookbackDays: 3,
				}).
				Return(&domain.SyncRun{ID: "RUN001", AccountID: acc.ID, Status: domain.SyncRunStatusSuccess}, nil)
		}

		service.syncAllAccounts(context.Background())

		assert.False(t, service.syncRunning)
		assert.False(t, service.lastSyncCompletedAt.IsZero())
	})

	t.Run("Erro em uma conta não impede a sincronização das demais", func(t *testing.T) {
		mockAccountRepo.EXPECT().
			List(gomock.Any(), []domain.AccountStatus{domain.AccountStatusActive}).
			Return(accounts, nil)

		mockSyncer.EXPECT().
			Sync(gomock.Any(), "ACC001", gomock.Any()).
			Return(nil, assert.AnError)
		mockSyncer.EXPECT().
			Sync(gomock.Any(), "ACC002", gomock.Any()).
			Return(&domain.SyncRun{ID: "RUN002", AccountID: "ACC002", Status: domain.SyncRunStatusSuccess}, nil)

		service.syncAllAccounts(context.Background())
	})

	t.Run("Execução já em andamento é ignorada", func(t *testing.T) {
		service.syncRunning = true

		service.syncAllAccounts(context.Background())

		service.syncRunning = false
	})
}

func TestAggregationSyncService_runDailyRollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregator := aggregatingmocks.NewMockAggregator(ctrl)

	service := &AggregationSyncService{
		config:     AggregationSyncConfig{Enabled: true},
		aggregator: mockAggregator,
	}

	t.Run("Consolida ontem e hoje", func(t *testing.T) {
		now := time.Now().UTC()
		yesterday := now.AddDate(0, 0, -1)

		gomock.InOrder(
			mockAggregator.EXPECT().
				AggregateHourlyToDaily(gomock.Any(), matchDay(t, yesterday)).
				Return(&aggregating.Summary{Groups: 2, Aggregated: 2}, nil),
			mockAggregator.EXPECT().
				AggregateHourlyToDaily(gomock.Any(), matchDay(t, now)).
				Return(&aggregating.Summary{Groups: 1, Aggregated: 1}, nil),
		)

		service.runDailyRollup(context.Background())

		assert.False(t, service.running)
	})

	t.Run("Erro no primeiro dia não impede o segundo", func(t *testing.T) {
		gomock.InOrder(
			mockAggregator.EXPECT().
				AggregateHourlyToDaily(gomock.Any(), gomock.Any()).
				Return(nil, assert.AnError),
			mockAggregator.EXPECT().
				AggregateHourlyToDaily(gomock.Any(), gomock.Any()).
				Return(&aggregating.Summary{}, nil),
		)

		service.runDailyRollup(context.Background())
	})
}

func TestAggregationSyncService_runMonthlyRollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAggregator := aggregatingmocks.NewMockAggregator(ctrl)

	service := &AggregationSyncService{
		config:     AggregationSyncConfig{Enabled: true},
		aggregator: mockAggregator,
	}

	now := time.Now().UTC()

	mockAggregator.EXPECT().
		AggregateDailyToMonthly(gomock.Any(), now.Year(), now.Month()).
		Return(&aggregating.Summary{Groups: 3, Aggregated: 3}, nil)

	// Na virada do mês o rollup também refaz o mês recém-fechado
	if now.Day() == 1 {
		previous := now.AddDate(0, -1, 0)
		mockAggregator.EXPECT().
			AggregateDailyToMonthly(gomock.Any(), previous.Year(), previous.Month()).
			Return(&aggregating.Summary{}, nil)
	}

	service.runMonthlyRollup(context.Background())
}

func TestCleanupService_runDailyCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLimiter := ratelimitmocks.NewMockLimiter(ctrl)
	mockCache := cachingmocks.NewMockCache(ctrl)
	mockSnapshotRepo := repomocks.NewMockMetricSnapshotRepository(ctrl)

	service := &CleanupService{
		config: CleanupConfig{
			HourlyRetentionDays: 30,
			Enabled:             true,
		},
		limiter:      mockLimiter,
		cache:        mockCache,
		snapshotRepo: mockSnapshotRepo,
	}

	t.Run("Purga janelas e poda snapshots horários antigos", func(t *testing.T) {
		mockLimiter.EXPECT().Cleanup(gomock.Any()).Return(int64(4), nil)
		mockSnapshotRepo.EXPECT().
			DeleteOlderThan(gomock.Any(), domain.ResolutionHourly, 30).
			Return(int64(120), nil)

		service.runDailyCleanup(context.Background())

		assert.False(t, service.lastRunAt.IsZero())
	})

	t.Run("Retenção zerada não poda snapshots", func(t *testing.T) {
		service.config.HourlyRetentionDays = 0

		mockLimiter.EXPECT().Cleanup(gomock.Any()).Return(int64(0), nil)

		service.runDailyCleanup(context.Background())

		service.config.HourlyRetentionDays = 30
	})

	t.Run("Limpeza do cache remove entradas expiradas", func(t *testing.T) {
		mockCache.EXPECT().Cleanup(gomock.Any()).Return(int64(7), nil)

		service.runCacheCleanup(context.Background())
	})
}

// matchDay aceita qualquer instante dentro do mesmo dia UTC
func matchDay(t *testing.T, want time.Time) gomock.Matcher {
	t.Helper()
	return gomock.Cond(func(x any) bool {
		got, ok := x.(time.Time)
		if !ok {
			return false
		}
		return got.UTC().Format(time.DateOnly) == want.UTC().Format(time.DateOnly)
	})
}
