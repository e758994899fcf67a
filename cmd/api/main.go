package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/database/postgres"
	"github.com/admetrica/adsync-api/infrastructure/integrator/googleads"
	"github.com/admetrica/adsync-api/infrastructure/integrator/googleads/googleclient"
	"github.com/admetrica/adsync-api/infrastructure/integrator/meta"
	"github.com/admetrica/adsync-api/infrastructure/integrator/meta/metaclient"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/api"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/ratelimit"
	"github.com/admetrica/adsync-api/internal/scheduler"
	"github.com/admetrica/adsync-api/internal/usecases/aggregating"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
	"github.com/admetrica/adsync-api/internal/usecases/insighting"
	"github.com/admetrica/adsync-api/internal/usecases/loading"
	"github.com/admetrica/adsync-api/internal/usecases/syncing"
	"github.com/admetrica/adsync-api/pkg/retry"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	snapshotRepo := repository.NewMetricSnapshotRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)
	cacheEntryRepo := repository.NewCacheEntryRepository(pgConn)
	rateLimitRepo := repository.NewRateLimitRepository(pgConn)

	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg))
	googleAdsIntegrator := googleads.New(cfg, googleclient.NewClient(cfg))

	connectors := map[domain.Platform]platform.Connector{
		domain.PlatformMeta:      metaIntegrator,
		domain.PlatformGoogleAds: googleAdsIntegrator,
	}

	limiter := ratelimit.NewLimiter(rateLimitRepo, ratelimit.Options{
		MaxCalls:      cfg.RateLimit.MaxCalls,
		WindowMinutes: cfg.RateLimit.WindowMinutes,
	})

	cacheTTL := time.Duration(cfg.Cache.DefaultTTLSeconds) * time.Second
	cacheService := caching.NewService(cacheEntryRepo, cacheTTL)
	loadService := loading.NewService(campaignRepo, snapshotRepo)
	aggregationService := aggregating.NewService(snapshotRepo)
	insightService := insighting.NewService(snapshotRepo, cacheService, cacheTTL)

	syncService := syncing.NewService(
		accountRepo,
		syncRunRepo,
		loadService,
		limiter,
		cacheService,
		connectors,
		syncing.Options{
			PageSize:     cfg.PlatformSync.PageSize,
			MaxPages:     cfg.PlatformSync.MaxPages,
			LookbackDays: cfg.PlatformSync.LookbackDays,
			SyncDelay:    time.Duration(cfg.PlatformSync.RequestDelaySeconds) * time.Second,
			Retry: retry.Options{
				MaxAttempts:       cfg.Retry.MaxAttempts,
				InitialDelay:      time.Duration(cfg.Retry.InitialDelaySeconds) * time.Second,
				MaxDelay:          time.Duration(cfg.Retry.MaxDelaySeconds) * time.Second,
				BackoffMultiplier: cfg.Retry.BackoffMultiplier,
				Classify:          platform.IsRetryable,
			},
		},
	)

	platformSyncService := scheduler.NewPlatformSyncService(accountRepo, syncService, cfg)
	aggregationSyncService := scheduler.NewAggregationSyncService(aggregationService, cfg)
	cleanupService := scheduler.NewCleanupService(limiter, cacheService, snapshotRepo, cfg)

	if err := platformSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de plataformas")
	} else {
		logrus.Info("Agendador de sincronização de plataformas iniciado com sucesso")
	}

	if err := aggregationSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rollups")
	} else {
		logrus.Info("Agendador de rollups iniciado com sucesso")
	}

	if err := cleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza")
	} else {
		logrus.Info("Agendador de limpeza iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		syncService,
		cacheService,
		platformSyncService,
		aggregationSyncService,
		cleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
