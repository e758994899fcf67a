package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/admetrica/adsync-api/infrastructure/database/postgres"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/pkg/utils"
)

const (
	syncRunsTable = "sync_runs sr"
)

type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	GetByID(ctx context.Context, id string) (*domain.SyncRun, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.SyncRun, error)
	MarkInProgress(ctx context.Context, id string) error
	Finalize(ctx context.Context, run *domain.SyncRun) error
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

const syncRunColumns = "sr.id, sr.account_id, sr.run_type, sr.status, sr.processed, sr.created, sr.updated, sr.failed, sr.error_message, sr.error_details, sr.started_at, sr.finished_at"

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	if run.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do sync run: %w", err)
		}
		run.ID = id
	}

	run.Status = domain.SyncRunStatusPending
	run.StartedAt = time.Now().UTC()

	query, args, err := squirrel.StatementBuilder.
		Insert("sync_runs").
		Columns("id", "account_id", "run_type", "status", "started_at").
		Values(run.ID, run.AccountID, run.RunType, run.Status, run.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncRunRepository) GetByID(ctx context.Context, id string) (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(syncRunColumns).
		From(syncRunsTable).
		Where(squirrel.Eq{"sr.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run := &domain.SyncRun{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&run.ID,
		&run.AccountID,
		&run.RunType,
		&run.Status,
		&run.Processed,
		&run.Created,
		&run.Updated,
		&run.Failed,
		&run.ErrorMessage,
		&run.ErrorDetails,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear sync run: %w", err)
	}

	return run, nil
}

func (r *syncRunRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := squirrel.
		Select(syncRunColumns).
		From(syncRunsTable).
		Where(squirrel.Eq{"sr.account_id": accountID}).
		OrderBy("sr.started_at DESC").
		Limit(uint64(limit)).
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

	runs := make([]*domain.SyncRun, 0)
	for rows.Next() {
		run := &domain.SyncRun{}
		if err := rows.Scan(
			&run.ID,
			&run.AccountID,
			&run.RunType,
			&run.Status,
			&run.Processed,
			&run.Created,
			&run.Updated,
			&run.Failed,
			&run.ErrorMessage,
			&run.ErrorDetails,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func (r *syncRunRepository) MarkInProgress(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Update("sync_runs").
		Set("status", domain.SyncRunStatusInProgress).
		Where(squirrel.Eq{"id": id, "status": domain.SyncRunStatusPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Finalize grava o status terminal, contadores e carimbo de término. A
// cláusula WHERE garante a transição única: um run já finalizado não muda.
func (r *syncRunRepository) Finalize(ctx context.Context, run *domain.SyncRun) error {
	query, args, err := squirrel.
		Update("sync_runs").
		Set("status", run.Status).
		Set("processed", run.Processed).
		Set("created", run.Created).
		Set("updated", run.Updated).
		Set("failed", run.Failed).
		Set("error_message", run.ErrorMessage).
		Set("error_details", run.ErrorDetails).
		Set("finished_at", run.FinishedAt).
		Where(squirrel.Eq{"id": run.ID}).
		Where(squirrel.Eq{"status": []domain.SyncRunStatus{
			domain.SyncRunStatusPending,
			domain.SyncRunStatusInProgress,
		}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sync run %s já finalizado", run.ID)
	}

	return nil
}
