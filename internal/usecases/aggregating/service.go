// Package aggregating implementa os rollups entre resoluções: horário→diário
// e diário→mensal. Um único rollup genérico, parametrizado por resolução de
// origem e destino, atende os dois casos.
//
// Contadores aditivos são somados; métricas de razão (ctr, cpc, cpm, roas,
// cpa) recebem a média aritmética dos valores de cada bucket de origem, e não
// são recalculadas a partir das somas, seguindo a convenção de relatório das
// próprias plataformas. O upsert sobrescreve a linha inteira, então rodar o
// mesmo rollup duas vezes produz exatamente o mesmo estado.
package aggregating

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/pkg/utils"
)

// Summary é o desfecho de uma rodada de rollup
type Summary struct {
	Groups     int `json:"groups"`
	Aggregated int `json:"aggregated"`
	Failed     int `json:"failed"`
}

type Aggregator interface {
	AggregateHourlyToDaily(ctx context.Context, date time.Time) (*Summary, error)
	AggregateDailyToMonthly(ctx context.Context, year int, month time.Month) (*Summary, error)
}

type Service struct {
	snapshotRepository repository.MetricSnapshotRepository
}

func NewService(snapshotRepo repository.MetricSnapshotRepository) *Service {
	return &Service{
		snapshotRepository: snapshotRepo,
	}
}

// AggregateHourlyToDaily consolida as linhas horárias de um dia em uma linha
// diária por entidade
func (s *Service) AggregateHourlyToDaily(ctx context.Context, date time.Time) (*Summary, error) {
	from := utils.StartOfDay(date)
	to := from.AddDate(0, 0, 1)

	return s.rollup(ctx, domain.ResolutionHourly, domain.ResolutionDaily, from, to)
}

// AggregateDailyToMonthly consolida as linhas diárias de um mês em uma linha
// mensal por entidade
func (s *Service) AggregateDailyToMonthly(ctx context.Context, year int, month time.Month) (*Summary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	return s.rollup(ctx, domain.ResolutionDaily, domain.ResolutionMonthly, from, to)
}

// rollup enumera os grupos (conta, entidade) com pelo menos uma linha de
// origem no intervalo e consolida cada um isoladamente: a falha de um grupo
// é registrada e contada sem abortar os irmãos
func (s *Service) rollup(
	ctx context.Context,
	source, target domain.Resolution,
	from, to time.Time,
) (*Summary, error) {
	groups, err := s.snapshotRepository.DistinctEntities(ctx, source, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Groups: len(groups)}

	for _, group := range groups {
		if err := s.rollupGroup(ctx, source, target, group, from, to); err != nil {
			summary.Failed++
			logrus.WithFields(logrus.Fields{
				"account_id":   group.AccountID,
				"entity_level": group.EntityLevel,
				"entity_id":    group.EntityID,
				"origem":       source,
				"destino":      target,
				"error":        err.Error(),
			}).Error("Falha ao consolidar grupo do rollup")
			continue
		}

		summary.Aggregated++
	}

	logrus.WithFields(logrus.Fields{
		"origem":     source,
		"destino":    target,
		"grupos":     summary.Groups,
		"agregados":  summary.Aggregated,
		"com_falha":  summary.Failed,
		"periodo_de": from.Format("2006-01-02"),
	}).Info("Rollup concluído")

	return summary, nil
}

func (s *Service) rollupGroup(
	ctx context.Context,
	source, target domain.Resolution,
	group repository.EntityRef,
	from, to time.Time,
) error {
	rows, err := s.snapshotRepository.ListForEntity(ctx, source, group.EntityLevel, group.EntityID, from, to)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	aggregated := combine(rows)
	aggregated.AccountID = group.AccountID
	aggregated.EntityLevel = group.EntityLevel
	aggregated.EntityID = group.EntityID
	aggregated.Resolution = target
	aggregated.BucketStart = domain.NormalizeBucket(from, target)

	return s.snapshotRepository.Upsert(ctx, aggregated)
}

// combine soma os contadores aditivos e tira a média aritmética das razões
// do conjunto de linhas de origem
func combine(rows []*domain.MetricSnapshot) *domain.MetricSnapshot {
	out := &domain.MetricSnapshot{}

	var ctr, cpc, cpm, roas, cpa float64
	for _, row := range rows {
		out.Impressions += row.Impressions
		out.Clicks += row.Clicks
		out.Spend += row.Spend
		out.Conversions += row.Conversions
		out.ConversionValue += row.ConversionValue

		ctr += row.CTR
		cpc += row.CPC
		cpm += row.CPM
		roas += row.ROAS
		cpa += row.CPA
	}

	n := float64(len(rows))
	out.CTR = utils.RoundWithTwoDecimalPlace(ctr / n)
	out.CPC = utils.RoundWithTwoDecimalPlace(cpc / n)
	out.CPM = utils.RoundWithTwoDecimalPlace(cpm / n)
	out.ROAS = utils.RoundWithTwoDecimalPlace(roas / n)
	out.CPA = utils.RoundWithTwoDecimalPlace(cpa / n)
	out.Spend = utils.RoundWithTwoDecimalPlace(out.Spend)
	out.ConversionValue = utils.RoundWithTwoDecimalPlace(out.ConversionValue)

	return out
}
