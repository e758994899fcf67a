package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/admetrica/adsync-api/infrastructure/database/postgres"
	"github.com/admetrica/adsync-api/internal/domain"
)

// uma tabela por resolução; a chave de upsert é idêntica nas três
var snapshotTables = map[domain.Resolution]string{
	domain.ResolutionHourly:  "hourly_metric_snapshots",
	domain.ResolutionDaily:   "daily_metric_snapshots",
	domain.ResolutionMonthly: "monthly_metric_snapshots",
}

// EntityRef identifica uma entidade com medições em um intervalo
type EntityRef struct {
	AccountID   string
	EntityLevel domain.EntityLevel
	EntityID    string
}

type MetricSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *domain.MetricSnapshot) error
	DistinctEntities(ctx context.Context, resolution domain.Resolution, from, to time.Time) ([]EntityRef, error)
	ListForEntity(ctx context.Context, resolution domain.Resolution, level domain.EntityLevel, entityID string, from, to time.Time) ([]*domain.MetricSnapshot, error)
	Series(ctx context.Context, filters *domain.SeriesFilters) ([]*domain.MetricSnapshot, error)
	DeleteOlderThan(ctx context.Context, resolution domain.Resolution, days int) (int64, error)
}

type metricSnapshotRepository struct {
	conn *postgres.Connection
}

func NewMetricSnapshotRepository(conn *postgres.Connection) MetricSnapshotRepository {
	return &metricSnapshotRepository{
		conn: conn,
	}
}

func tableFor(resolution domain.Resolution) (string, error) {
	table, ok := snapshotTables[resolution]
	if !ok {
		return "", fmt.Errorf("resolução desconhecida: %s", resolution)
	}
	return table, nil
}

const snapshotColumns = "id, account_id, entity_level, entity_id, bucket_start, impressions, clicks, spend, conversions, conversion_value, ctr, cpc, cpm, roas, cpa, created_at, updated_at"

// Upsert grava o snapshot pela chave (entity_level, entity_id, bucket_start),
// sobrescrevendo integralmente os campos medidos e derivados no conflito.
// Nunca incrementa: é isso que torna os rollups reexecutáveis.
func (r *metricSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.MetricSnapshot) error {
	table, err := tableFor(snapshot.Resolution)
	if err != nil {
		return err
	}

	bucket := domain.NormalizeBucket(snapshot.BucketStart, snapshot.Resolution)

	query, args, err := squirrel.StatementBuilder.
		Insert(table).
		Columns("account_id", "entity_level", "entity_id", "bucket_start",
			"impressions", "clicks", "spend", "conversions", "conversion_value",
			"ctr", "cpc", "cpm", "roas", "cpa").
		Values(
			snapshot.AccountID,
			snapshot.EntityLevel,
			snapshot.EntityID,
			bucket,
			snapshot.Impressions,
			snapshot.Clicks,
			snapshot.Spend,
			snapshot.Conversions,
			snapshot.ConversionValue,
			snapshot.CTR,
			snapshot.CPC,
			snapshot.CPM,
			snapshot.ROAS,
			snapshot.CPA,
		).
		Suffix(`
			ON CONFLICT (entity_level, entity_id, bucket_start) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				conversions = EXCLUDED.conversions,
				conversion_value = EXCLUDED.conversion_value,
				ctr = EXCLUDED.ctr,
				cpc = EXCLUDED.cpc,
				cpm = EXCLUDED.cpm,
				roas = EXCLUDED.roas,
				cpa = EXCLUDED.cpa,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// DistinctEntities enumera os pares (conta, entidade) com pelo menos uma
// medição no intervalo, na resolução dada, que é a base da iteração do rollup
func (r *metricSnapshotRepository) DistinctEntities(ctx context.Context, resolution domain.Resolution, from, to time.Time) ([]EntityRef, error) {
	table, err := tableFor(resolution)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("DISTINCT account_id, entity_level, entity_id").
		From(table).
		Where(squirrel.GtOrEq{"bucket_start": from}).
		Where(squirrel.Lt{"bucket_start": to}).
		OrderBy("account_id, entity_level, entity_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	refs := make([]EntityRef, 0)
	for rows.Next() {
		ref := EntityRef{}
		if err := rows.Scan(&ref.AccountID, &ref.EntityLevel, &ref.EntityID); err != nil {
			return nil, fmt.Errorf("erro ao escanear entidade: %w", err)
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return refs, nil
}

func (r *metricSnapshotRepository) ListForEntity(ctx context.Context, resolution domain.Resolution, level domain.EntityLevel, entityID string, from, to time.Time) ([]*domain.MetricSnapshot, error) {
	table, err := tableFor(resolution)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select(snapshotColumns).
		From(table).
		Where(squirrel.Eq{"entity_level": level, "entity_id": entityID}).
		Where(squirrel.GtOrEq{"bucket_start": from}).
		Where(squirrel.Lt{"bucket_start": to}).
		OrderBy("bucket_start ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.querySnapshots(ctx, resolution, query, args)
}

func (r *metricSnapshotRepository) Series(ctx context.Context, filters *domain.SeriesFilters) ([]*domain.MetricSnapshot, error) {
	table, err := tableFor(filters.Resolution)
	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.
		Select(snapshotColumns).
		From(table).
		Where(squirrel.Eq{"account_id": filters.AccountID}).
		OrderBy("bucket_start ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.EntityLevel != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"entity_level": filters.EntityLevel})
	}
	if filters.EntityID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"entity_id": filters.EntityID})
	}
	if filters.StartDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"bucket_start": *filters.StartDate})
	}
	if filters.EndDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"bucket_start": *filters.EndDate})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.querySnapshots(ctx, filters.Resolution, query, args)
}

func (r *metricSnapshotRepository) DeleteOlderThan(ctx context.Context, resolution domain.Resolution, days int) (int64, error) {
	table, err := tableFor(resolution)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(table).
		Where(squirrel.Lt{"bucket_start": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *metricSnapshotRepository) querySnapshots(ctx context.Context, resolution domain.Resolution, query string, args []interface{}) ([]*domain.MetricSnapshot, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.MetricSnapshot, 0)
	for rows.Next() {
		snapshot := &domain.MetricSnapshot{Resolution: resolution}
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.AccountID,
			&snapshot.EntityLevel,
			&snapshot.EntityID,
			&snapshot.BucketStart,
			&snapshot.Impressions,
			&snapshot.Clicks,
			&snapshot.Spend,
			&snapshot.Conversions,
			&snapshot.ConversionValue,
			&snapshot.CTR,
			&snapshot.CPC,
			&snapshot.CPM,
			&snapshot.ROAS,
			&snapshot.CPA,
			&snapshot.CreatedAt,
			&snapshot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}
