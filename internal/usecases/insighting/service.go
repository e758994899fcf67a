// Package insighting atende as leituras de dashboard e relatório: séries de
// métricas por conta, resolução e intervalo, passando pelo cache antes do
// armazenamento canônico
package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/internal/usecases/caching"
)

const seriesResourceType = "metric_series"

type Insighter interface {
	GetMetricSeries(ctx context.Context, filters *domain.SeriesFilters) (*domain.MetricSeriesResponse, error)
}

type Service struct {
	snapshotRepository repository.MetricSnapshotRepository
	cache              caching.Cache
	cacheTTL           time.Duration
}

func NewService(
	snapshotRepo repository.MetricSnapshotRepository,
	cache caching.Cache,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		snapshotRepository: snapshotRepo,
		cache:              cache,
		cacheTTL:           cacheTTL,
	}
}

// GetMetricSeries devolve a série pedida, servida do cache quando possível.
// Miss cai para o banco e repovoa o cache com a resposta montada.
func (s *Service) GetMetricSeries(ctx context.Context, filters *domain.SeriesFilters) (*domain.MetricSeriesResponse, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	key := cacheKey(filters)

	cached := &domain.MetricSeriesResponse{}
	if s.cache.Get(ctx, key, cached) {
		cached.FromCache = true
		return cached, nil
	}

	snapshots, err := s.snapshotRepository.Series(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar série de métricas: %w", err)
	}

	response := &domain.MetricSeriesResponse{
		AccountID:  filters.AccountID,
		Resolution: filters.Resolution,
		Filters:    filters,
		Snapshots:  snapshots,
	}
	response.Aggregate()

	s.cache.Set(ctx, key, response, s.cacheTTL, &caching.Tags{
		ResourceType: "account",
		ResourceID:   filters.AccountID,
	})

	logrus.WithFields(logrus.Fields{
		"account_id": filters.AccountID,
		"resolution": filters.Resolution,
		"snapshots":  len(snapshots),
	}).Debug("Série de métricas servida do banco")

	return response, nil
}

func validateFilters(filters *domain.SeriesFilters) error {
	if filters == nil || filters.AccountID == "" {
		return fmt.Errorf("é necessário informar a conta")
	}
	if filters.StartDate == nil || filters.EndDate == nil {
		return fmt.Errorf("é necessário informar as datas de início e fim")
	}
	if filters.StartDate.After(*filters.EndDate) {
		return fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}
	if filters.Resolution == "" {
		return fmt.Errorf("é necessário informar a resolução")
	}
	return nil
}

func cacheKey(filters *domain.SeriesFilters) string {
	params := map[string]string{
		"account_id":   filters.AccountID,
		"entity_level": string(filters.EntityLevel),
		"entity_id":    filters.EntityID,
		"start_date":   filters.StartDate.Format("2006-01-02"),
		"end_date":     filters.EndDate.Format("2006-01-02"),
	}

	return caching.BuildKey(seriesResourceType, filters.Resolution, params)
}
