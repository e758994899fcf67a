package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/usecases/aggregating"
	"github.com/admetrica/adsync-api/pkg/utils"
)

// AggregationSyncConfig representa a configuração do agendador de rollups
type AggregationSyncConfig struct {
	DailyCronSchedule   string
	MonthlyCronSchedule string
	Enabled             bool
}

// AggregationSyncService agenda os rollups horário→diário e diário→mensal.
// Os rollups sobrescrevem a linha inteira, então repetir uma rodada é seguro.
type AggregationSyncService struct {
	scheduler         *gocron.Scheduler
	config            AggregationSyncConfig
	aggregator        aggregating.Aggregator
	runMutex          sync.Mutex
	running           bool
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
}

// NewAggregationSyncService cria uma nova instância do serviço de rollups
func NewAggregationSyncService(
	aggregator aggregating.Aggregator,
	appConfig *config.Config,
) *AggregationSyncService {
	aggConfig := AggregationSyncConfig{
		DailyCronSchedule:   appConfig.Aggregation.DailyCronSchedule,
		MonthlyCronSchedule: appConfig.Aggregation.MonthlyCronSchedule,
		Enabled:             appConfig.Aggregation.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"daily_cron":   aggConfig.DailyCronSchedule,
		"monthly_cron": aggConfig.MonthlyCronSchedule,
		"enabled":      aggConfig.Enabled,
	}).Info("Configuração do agendador de rollups carregada")

	return &AggregationSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     aggConfig,
		aggregator: aggregator,
	}
}

// Start inicia o agendador
func (s *AggregationSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Rollups de agregação desabilitados por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.DailyCronSchedule).Do(func() {
		s.runDailyRollup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rollup horário→diário: %w", err)
	}

	_, err = s.scheduler.Cron(s.config.MonthlyCronSchedule).Do(func() {
		s.runMonthlyRollup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar rollup diário→mensal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de rollups")
		s.scheduler.Stop()
	}()

	return nil
}

// runDailyRollup consolida ontem e hoje: ontem para fechar o dia completo,
// hoje para manter o parcial corrente atualizado
func (s *AggregationSyncService) runDailyRollup(ctx context.Context) {
	s.track(func() {
		now := time.Now().UTC()

		for _, date := range utils.DateRange(now.AddDate(0, 0, -1), now) {
			summary, err := s.aggregator.AggregateHourlyToDaily(ctx, date)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"date":  date.Format(time.DateOnly),
					"error": err.Error(),
				}).Error("Erro no rollup horário→diário")
				continue
			}

			logrus.WithFields(logrus.Fields{
				"date":      date.Format(time.DateOnly),
				"grupos":    summary.Groups,
				"agregados": summary.Aggregated,
				"com_falha": summary.Failed,
			}).Info("Rollup horário→diário executado")
		}
	})
}

// runMonthlyRollup consolida o mês corrente; no primeiro dia do mês também
// refaz o mês anterior para fechar a virada
func (s *AggregationSyncService) runMonthlyRollup(ctx context.Context) {
	s.track(func() {
		now := time.Now().UTC()

		months := []time.Time{utils.StartOfMonth(now)}
		if now.Day() == 1 {
			months = append(months, utils.StartOfMonth(now).AddDate(0, -1, 0))
		}

		for _, month := range months {
			summary, err := s.aggregator.AggregateDailyToMonthly(ctx, month.Year(), month.Month())
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"month": utils.MonthPeriod(month.Year(), month.Month()),
					"error": err.Error(),
				}).Error("Erro no rollup diário→mensal")
				continue
			}

			logrus.WithFields(logrus.Fields{
				"month":     utils.MonthPeriod(month.Year(), month.Month()),
				"grupos":    summary.Groups,
				"agregados": summary.Aggregated,
				"com_falha": summary.Failed,
			}).Info("Rollup diário→mensal executado")
		}
	})
}

func (s *AggregationSyncService) track(fn func()) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Rollup já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.lastRunFinishedAt = time.Now()
		s.runMutex.Unlock()
	}()

	fn()
}

// TriggerManualSync executa manualmente os dois rollups
func (s *AggregationSyncService) TriggerManualSync() {
	logrus.Info("Iniciando rollups manuais de agregação")
	go func() {
		ctx := context.Background()
		s.runDailyRollup(ctx)
		s.runMonthlyRollup(ctx)
	}()
}

// GetStatus retorna o status atual do agendador
func (s *AggregationSyncService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":              s.config.Enabled,
		"daily_cron":           s.config.DailyCronSchedule,
		"monthly_cron":         s.config.MonthlyCronSchedule,
		"running":              s.running,
		"last_run_started_at":  s.lastRunStartedAt,
		"last_run_finished_at": s.lastRunFinishedAt,
	}
}
