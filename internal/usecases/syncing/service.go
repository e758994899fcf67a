// Package syncing orquestra uma execução de sincronização: registro do run,
// estágios sequenciais de listagem por nível de entidade, busca de métricas
// com gate de rate limit e retry, transformação e carga. Runs de contas
// diferentes executam concorrentes sem estado mutável compartilhado; todo o
// estado de um run vive no seu registro e nas linhas que ele grava.
package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/ratelimit"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
	"github.com/admetrica/adsync-api/internal/usecases/loading"
	"github.com/admetrica/adsync-api/pkg/retry"
	"github.com/admetrica/adsync-api/pkg/utils"
)

// Options delimita uma execução: tamanho e teto de páginas por estágio e a
// janela retroativa de métricas quando o chamador não pede outra
type Options struct {
	PageSize     int
	MaxPages     int
	LookbackDays int
	Retry        retry.Options
	SyncDelay    time.Duration
}

func (o *Options) setDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 50
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 20
	}
	if o.LookbackDays <= 0 {
		o.LookbackDays = 3
	}
}

type Syncer interface {
	Sync(ctx context.Context, accountID string, opts domain.SyncOptions) (*domain.SyncRun, error)
	GetRun(ctx context.Context, runID string) (*domain.SyncRun, error)
	ListRuns(ctx context.Context, accountID string, limit int) ([]*domain.SyncRun, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	runRepository     repository.SyncRunRepository
	loader            loading.Loader
	limiter           ratelimit.Limiter
	cache             caching.Cache
	connectors        map[domain.Platform]platform.Connector
	options           Options
}

func NewService(
	accountRepo repository.AccountRepository,
	runRepo repository.SyncRunRepository,
	loader loading.Loader,
	limiter ratelimit.Limiter,
	cache caching.Cache,
	connectors map[domain.Platform]platform.Connector,
	options Options,
) *Service {
	options.setDefaults()

	return &Service{
		accountRepository: accountRepo,
		runRepository:     runRepo,
		loader:            loader,
		limiter:           limiter,
		cache:             cache,
		connectors:        connectors,
		options:           options,
	}
}

// runState acumula os contadores dos estágios e as entidades listadas para o
// estágio de métricas
type runState struct {
	run      *domain.SyncRun
	account  *domain.Account
	config   platform.TransformConfig
	entities []platform.RawCampaign
}

// Sync executa a sincronização completa da conta e devolve o run finalizado.
// A chamada sempre retorna um run em status terminal quando o registro chegou
// a ser criado; falha parcial vira partial_success, nunca erro da chamada.
func (s *Service) Sync(ctx context.Context, accountID string, opts domain.SyncOptions) (*domain.SyncRun, error) {
	account, err := s.accountRepository.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conta %s: %w", accountID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("conta %s não encontrada", accountID)
	}

	if opts.RunType == "" {
		opts.RunType = domain.SyncRunTypeIncremental
	}

	run := &domain.SyncRun{
		AccountID: account.ID,
		RunType:   opts.RunType,
		Status:    domain.SyncRunStatusPending,
	}
	if err := s.runRepository.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("erro ao criar registro do run: %w", err)
	}

	if err := s.runRepository.MarkInProgress(ctx, run.ID); err != nil {
		return nil, fmt.Errorf("erro ao iniciar o run %s: %w", run.ID, err)
	}
	run.Status = domain.SyncRunStatusInProgress

	logrus.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"account_id": account.ID,
		"platform":   account.Platform,
		"run_type":   opts.RunType,
	}).Info("Sincronização iniciada")

	state := &runState{run: run, account: account, config: transformConfig(account)}

	if err := s.execute(ctx, state, opts); err != nil {
		return s.finalize(ctx, state, err)
	}

	return s.finalize(ctx, state, nil)
}

func (s *Service) GetRun(ctx context.Context, runID string) (*domain.SyncRun, error) {
	return s.runRepository.GetByID(ctx, runID)
}

func (s *Service) ListRuns(ctx context.Context, accountID string, limit int) ([]*domain.SyncRun, error) {
	return s.runRepository.ListByAccount(ctx, accountID, limit)
}

// execute roda os estágios em ordem estrita: níveis de entidade primeiro,
// métricas por último, porque o estágio de métricas depende das entidades
// persistidas pelos anteriores
func (s *Service) execute(ctx context.Context, state *runState, opts domain.SyncOptions) error {
	connector, ok := s.connectors[state.account.Platform]
	if !ok {
		return fmt.Errorf("nenhum conector registrado para a plataforma %s", state.account.Platform)
	}

	levels := requestedLevels(opts)

	if opts.RunType != domain.SyncRunTypeMetricsOnly {
		for _, level := range levels {
			if err := s.runListStage(ctx, state, connector, level); err != nil {
				return err
			}
		}
	} else {
		if err := s.collectKnownEntities(ctx, state, connector, levels); err != nil {
			return err
		}
	}

	return s.runMetricsStage(ctx, state, connector, opts, levels)
}

// runListStage pagina a listagem remota de um nível com teto de páginas,
// transforma e carrega cada página
func (s *Service) runListStage(
	ctx context.Context,
	state *runState,
	connector platform.Connector,
	level domain.EntityLevel,
) error {
	cursor := ""

	for page := 0; page < s.options.MaxPages; page++ {
		if err := s.gate(ctx, state.account.ID, "list:"+string(level)); err != nil {
			return err
		}

		result, err := retry.Do(ctx, func() (*platform.Page, error) {
			return connector.List(ctx, state.account, level, platform.ListOptions{
				Limit:  s.options.PageSize,
				Cursor: cursor,
			})
		}, s.options.Retry)
		if err != nil {
			if platform.IsAuthError(err) {
				return fmt.Errorf("falha de autorização ao listar %s: %w", level, err)
			}
			// esgotou o retry: o estágio falha, mas os estágios seguintes
			// ainda rodam sobre o que já foi listado
			state.run.Failed++
			logrus.WithFields(logrus.Fields{
				"run_id": state.run.ID,
				"level":  level,
				"error":  err.Error(),
			}).Error("Estágio de listagem interrompido após esgotar as tentativas")
			return nil
		}

		batch := s.loadListedPage(ctx, state, connector, result.Items)
		state.entities = append(state.entities, batch...)

		if result.NextCursor == "" {
			return nil
		}
		cursor = result.NextCursor
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    state.run.ID,
		"level":     level,
		"max_pages": s.options.MaxPages,
	}).Warn("Teto de páginas atingido, cursor remoto possivelmente instável")

	return nil
}

// loadListedPage transforma e carrega as entidades de uma página, sem linhas
// de métricas ainda, e devolve as que sobreviveram à validação
func (s *Service) loadListedPage(
	ctx context.Context,
	state *runState,
	connector platform.Connector,
	items []platform.RawCampaign,
) []platform.RawCampaign {
	transformer := connector.Transformer()

	batch := make([]platform.CampaignWithMetrics, 0, len(items))
	for _, item := range items {
		batch = append(batch, platform.CampaignWithMetrics{Campaign: item})
	}

	transformed := transformer.TransformBatch(batch, state.config)
	state.run.Failed += len(transformed.Errors)

	loaded := s.loader.LoadBatch(ctx, transformed.Items)
	s.accumulate(state.run, loaded)

	survivors := make([]platform.RawCampaign, 0, len(items))
	for _, item := range items {
		if !failedItem(transformed.Errors, loaded.Errors, item.ExternalID) {
			survivors = append(survivors, item)
		}
	}

	return survivors
}

// collectKnownEntities alimenta o estágio de métricas a partir da listagem
// remota sem recarregar as entidades (runs metrics_only)
func (s *Service) collectKnownEntities(
	ctx context.Context,
	state *runState,
	connector platform.Connector,
	levels []domain.EntityLevel,
) error {
	for _, level := range levels {
		cursor := ""
		for page := 0; page < s.options.MaxPages; page++ {
			if err := s.gate(ctx, state.account.ID, "list:"+string(level)); err != nil {
				return err
			}

			result, err := retry.Do(ctx, func() (*platform.Page, error) {
				return connector.List(ctx, state.account, level, platform.ListOptions{
					Limit:  s.options.PageSize,
					Cursor: cursor,
				})
			}, s.options.Retry)
			if err != nil {
				if platform.IsAuthError(err) {
					return fmt.Errorf("falha de autorização ao listar %s: %w", level, err)
				}
				state.run.Failed++
				return nil
			}

			state.entities = append(state.entities, result.Items...)

			if result.NextCursor == "" {
				break
			}
			cursor = result.NextCursor
		}
	}

	return nil
}

// runMetricsStage busca as métricas de cada entidade listada, uma a uma, com
// gate de rate limit e retry por chamada. Falha de uma entidade conta e segue.
func (s *Service) runMetricsStage(
	ctx context.Context,
	state *runState,
	connector platform.Connector,
	opts domain.SyncOptions,
	levels []domain.EntityLevel,
) error {
	lookback := opts.LookbackDays
	if lookback <= 0 {
		lookback = s.options.LookbackDays
	}

	now := time.Now().UTC()
	insightOpts := platform.InsightOptions{
		Resolution: domain.ResolutionHourly,
		StartDate:  utils.StartOfDay(now.AddDate(0, 0, -lookback)),
		EndDate:    now,
	}

	transformer := connector.Transformer()

	for _, entity := range state.entities {
		if !levelRequested(levels, entity.Level) {
			continue
		}

		if err := s.gate(ctx, state.account.ID, "insights"); err != nil {
			return err
		}

		entityOpts := insightOpts
		entityOpts.Level = entity.Level

		rows, err := retry.Do(ctx, func() ([]platform.RawMetricRow, error) {
			return connector.GetInsights(ctx, state.account, entity.ExternalID, entityOpts)
		}, s.options.Retry)
		if err != nil {
			if platform.IsAuthError(err) {
				return fmt.Errorf("falha de autorização ao buscar métricas: %w", err)
			}

			state.run.Failed++
			logrus.WithFields(logrus.Fields{
				"run_id":      state.run.ID,
				"external_id": entity.ExternalID,
				"error":       err.Error(),
			}).Error("Falha ao buscar métricas da entidade")
			continue
		}

		item, err := transformer.Transform(entity, rows, state.config)
		if err != nil {
			state.run.Failed++
			continue
		}

		loaded, err := s.loader.Load(ctx, item)
		if err != nil {
			state.run.Failed++
			continue
		}

		state.run.Processed++
		if loaded.Created {
			state.run.Created++
		} else {
			state.run.Updated++
		}

		if s.options.SyncDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.options.SyncDelay):
			}
		}
	}

	return nil
}

// gate consome o orçamento de chamadas; orçamento esgotado aborta o run com
// erro de estágio em vez de martelar a plataforma
func (s *Service) gate(ctx context.Context, accountID, endpoint string) error {
	allowed, err := s.limiter.Allow(ctx, accountID, endpoint)
	if err != nil {
		return fmt.Errorf("erro no limitador de chamadas: %w", err)
	}
	if !allowed {
		return fmt.Errorf("orçamento de chamadas esgotado para %s/%s", accountID, endpoint)
	}
	return nil
}

// finalize escreve o status terminal exatamente uma vez e, em sucesso,
// avança o last_synced_at da conta e invalida o cache dela
func (s *Service) finalize(ctx context.Context, state *runState, runErr error) (*domain.SyncRun, error) {
	run := state.run
	now := time.Now().UTC()
	run.FinishedAt = &now

	switch {
	case runErr != nil:
		run.Status = domain.SyncRunStatusFailed
		message := runErr.Error()
		run.ErrorMessage = &message
	case run.Failed == 0:
		run.Status = domain.SyncRunStatusSuccess
	default:
		run.Status = domain.SyncRunStatusPartialSuccess
	}

	if err := s.runRepository.Finalize(ctx, run); err != nil {
		logrus.WithFields(logrus.Fields{
			"run_id": run.ID,
			"error":  err.Error(),
		}).Error("Erro ao finalizar o registro do run")
	}

	if run.Status == domain.SyncRunStatusSuccess {
		if err := s.accountRepository.AdvanceLastSyncedAt(ctx, run.AccountID, now); err != nil {
			logrus.WithField("account_id", run.AccountID).Warn("Erro ao avançar last_synced_at da conta")
		}
	}

	if run.Processed > 0 && s.cache != nil {
		s.cache.InvalidateByResource(ctx, "account", run.AccountID)
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     run.ID,
		"account_id": run.AccountID,
		"status":     run.Status,
		"processed":  run.Processed,
		"created":    run.Created,
		"updated":    run.Updated,
		"failed":     run.Failed,
		"duracao":    run.Duration().String(),
	}).Info("Sincronização finalizada")

	return run, nil
}

func (s *Service) accumulate(run *domain.SyncRun, batch *loading.BatchResult) {
	run.Processed += batch.Success
	run.Created += batch.Created
	run.Updated += batch.Updated
	run.Failed += batch.Failed
}

func transformConfig(account *domain.Account) platform.TransformConfig {
	cfg := platform.TransformConfig{AccountID: account.ID}
	if account.RevenuePerConversion != nil {
		cfg.RevenuePerConversion = *account.RevenuePerConversion
	}
	return cfg
}

// requestedLevels resolve a restrição de níveis do chamador; sem restrição,
// a ordem padrão campanha → conjunto → anúncio
func requestedLevels(opts domain.SyncOptions) []domain.EntityLevel {
	if len(opts.EntityLevels) > 0 {
		return opts.EntityLevels
	}
	return []domain.EntityLevel{
		domain.EntityLevelCampaign,
		domain.EntityLevelAdSet,
		domain.EntityLevelAd,
	}
}

func levelRequested(levels []domain.EntityLevel, level domain.EntityLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

func failedItem(transformErrors, loadErrors []platform.ItemError, externalID string) bool {
	for _, e := range transformErrors {
		if e.ExternalID == externalID {
			return true
		}
	}
	for _, e := range loadErrors {
		if e.ExternalID == externalID {
			return true
		}
	}
	return false
}
