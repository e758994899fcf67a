package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/usecases/syncing"
)

// PlatformSyncConfig representa a configuração do agendador de sincronização
// com as plataformas de anúncios
type PlatformSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// PlatformSyncService gerencia o agendamento e execução da sincronização de
// todas as contas ativas
type PlatformSyncService struct {
	scheduler           *gocron.Scheduler
	config              PlatformSyncConfig
	accountRepo         repository.AccountRepository
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewPlatformSyncService cria uma nova instância do serviço de sincronização
func NewPlatformSyncService(
	accountRepo repository.AccountRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
) *PlatformSyncService {
	syncConfig := PlatformSyncConfig{
		CronSchedule:      appConfig.PlatformSync.CronSchedule,
		LookbackDays:      appConfig.PlatformSync.LookbackDays,
		MaxConcurrentJobs: appConfig.PlatformSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.PlatformSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de plataformas carregada")

	return &PlatformSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		accountRepo: accountRepo,
		syncer:      syncer,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *PlatformSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de plataformas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de plataformas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de plataformas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de plataformas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts sincroniza todas as contas ativas, com concorrência
// limitada por semáforo. Runs de contas diferentes não compartilham estado.
func (s *PlatformSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de plataformas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de todas as contas ativas")

	accounts, err := s.accountRepo.List(ctx, []domain.AccountStatus{domain.AccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para sincronização")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para sincronização")
		return
	}

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.Account) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			s.syncAccount(ctx, acc)
		}(account)
	}

	wg.Wait()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"accounts": len(accounts),
	}).Info("Sincronização de plataformas concluída")

	s.lastSyncCompletedAt = time.Now()
}

func (s *PlatformSyncService) syncAccount(ctx context.Context, acc *domain.Account) {
	logrus.WithFields(logrus.Fields{
		"account_id":   acc.ID,
		"platform":     acc.Platform,
		"account_name": acc.Name,
	}).Info("Sincronizando conta")

	run, err := s.syncer.Sync(ctx, acc.ID, domain.SyncOptions{
		RunType:      domain.SyncRunTypeIncremental,
		LookbackDays: s.config.LookbackDays,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": acc.ID,
			"error":      err.Error(),
		}).Error("Erro ao sincronizar conta")
		return
	}

	logrus.WithFields(logrus.Fields{
		"account_id": acc.ID,
		"run_id":     run.ID,
		"status":     run.Status,
		"processed":  run.Processed,
		"failed":     run.Failed,
	}).Info("Sincronização da conta finalizada")
}

// TriggerManualSync inicia manualmente uma sincronização de todas as contas
func (s *PlatformSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de plataformas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de plataformas")
	go s.syncAllAccounts(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *PlatformSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
