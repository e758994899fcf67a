package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/ratelimit"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
)

// CleanupConfig representa a configuração do agendador de limpeza
type CleanupConfig struct {
	CronSchedule        string
	CacheCronSchedule   string
	HourlyRetentionDays int
	Enabled             bool
}

// CleanupService agenda a manutenção operacional: purga de janelas de rate
// limit fechadas, remoção de entradas expiradas do cache e poda da retenção
// de snapshots horários
type CleanupService struct {
	scheduler    *gocron.Scheduler
	config       CleanupConfig
	limiter      ratelimit.Limiter
	cache        caching.Cache
	snapshotRepo repository.MetricSnapshotRepository
	lastRunAt    time.Time
}

// NewCleanupService cria uma nova instância do serviço de limpeza
func NewCleanupService(
	limiter ratelimit.Limiter,
	cache caching.Cache,
	snapshotRepo repository.MetricSnapshotRepository,
	appConfig *config.Config,
) *CleanupService {
	cleanupConfig := CleanupConfig{
		CronSchedule:        appConfig.Cleanup.CronSchedule,
		CacheCronSchedule:   appConfig.Cleanup.CacheCronSchedule,
		HourlyRetentionDays: appConfig.Cleanup.HourlyRetentionDays,
		Enabled:             appConfig.Cleanup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron":                  cleanupConfig.CronSchedule,
		"cache_cron":            cleanupConfig.CacheCronSchedule,
		"hourly_retention_days": cleanupConfig.HourlyRetentionDays,
		"enabled":               cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza carregada")

	return &CleanupService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       cleanupConfig,
		limiter:      limiter,
		cache:        cache,
		snapshotRepo: snapshotRepo,
	}
}

// Start inicia o agendador
func (s *CleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza agendada desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDailyCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza diária: %w", err)
	}

	_, err = s.scheduler.Cron(s.config.CacheCronSchedule).Do(func() {
		s.runCacheCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza")
		s.scheduler.Stop()
	}()

	return nil
}

// runDailyCleanup purga janelas de rate limit fechadas e, quando a retenção
// está configurada, poda snapshots horários antigos
func (s *CleanupService) runDailyCleanup(ctx context.Context) {
	s.lastRunAt = time.Now()

	if _, err := s.limiter.Cleanup(ctx); err != nil {
		logrus.WithError(err).Error("Erro na purga de janelas de rate limit")
	}

	if s.config.HourlyRetentionDays > 0 {
		deleted, err := s.snapshotRepo.DeleteOlderThan(ctx, domain.ResolutionHourly, s.config.HourlyRetentionDays)
		if err != nil {
			logrus.WithError(err).Error("Erro na poda de snapshots horários antigos")
			return
		}

		if deleted > 0 {
			logrus.WithFields(logrus.Fields{
				"snapshots_removidos": deleted,
				"retention_days":      s.config.HourlyRetentionDays,
			}).Info("Poda de snapshots horários concluída")
		}
	}
}

func (s *CleanupService) runCacheCleanup(ctx context.Context) {
	if _, err := s.cache.Cleanup(ctx); err != nil {
		logrus.WithError(err).Error("Erro na limpeza de entradas expiradas do cache")
	}
}

// TriggerManualSync executa manualmente todas as rotinas de limpeza
func (s *CleanupService) TriggerManualSync() {
	logrus.Info("Iniciando limpeza manual")
	go func() {
		ctx := context.Background()
		s.runDailyCleanup(ctx)
		s.runCacheCleanup(ctx)
	}()
}

// GetStatus retorna o status atual do agendador
func (s *CleanupService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"cache_cron":            s.config.CacheCronSchedule,
		"hourly_retention_days": s.config.HourlyRetentionDays,
		"last_run_at":           s.lastRunAt,
	}
}
