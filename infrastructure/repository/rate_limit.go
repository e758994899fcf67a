package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/admetrica/adsync-api/infrastructure/database/postgres"
	"github.com/admetrica/adsync-api/internal/domain"
)

const (
	rateLimitWindowsTable = "rate_limit_windows rlw"
)

type RateLimitRepository interface {
	LatestWindow(ctx context.Context, accountID, endpoint string) (*domain.RateLimitWindow, error)
	Create(ctx context.Context, window *domain.RateLimitWindow) error
	Increment(ctx context.Context, windowID int64) (bool, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type rateLimitRepository struct {
	conn *postgres.Connection
}

func NewRateLimitRepository(conn *postgres.Connection) RateLimitRepository {
	return &rateLimitRepository{
		conn: conn,
	}
}

const rateLimitColumns = "rlw.id, rlw.account_id, rlw.endpoint, rlw.calls_count, rlw.max_calls, rlw.window_start, rlw.window_end, rlw.created_at"

// LatestWindow devolve a janela mais recente da conta para o endpoint,
// fechada ou não; cabe ao chamador decidir se abre uma nova
func (r *rateLimitRepository) LatestWindow(ctx context.Context, accountID, endpoint string) (*domain.RateLimitWindow, error) {
	query, args, err := squirrel.
		Select(rateLimitColumns).
		From(rateLimitWindowsTable).
		Where(squirrel.Eq{"rlw.account_id": accountID, "rlw.endpoint": endpoint}).
		OrderBy("rlw.window_start DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	window := &domain.RateLimitWindow{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.AccountID,
		&window.Endpoint,
		&window.CallsCount,
		&window.MaxCalls,
		&window.WindowStart,
		&window.WindowEnd,
		&window.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear janela de rate limit: %w", err)
	}

	return window, nil
}

func (r *rateLimitRepository) Create(ctx context.Context, window *domain.RateLimitWindow) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("rate_limit_windows").
		Columns("account_id", "endpoint", "calls_count", "max_calls", "window_start", "window_end").
		Values(
			window.AccountID,
			window.Endpoint,
			window.CallsCount,
			window.MaxCalls,
			window.WindowStart,
			window.WindowEnd,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Increment consome uma chamada da janela de forma atômica. Retorna false
// quando o orçamento já está esgotado; a condição fica na própria instrução
// UPDATE para que duas instâncias concorrentes não estourem o limite juntas
func (r *rateLimitRepository) Increment(ctx context.Context, windowID int64) (bool, error) {
	query, args, err := squirrel.
		Update("rate_limit_windows").
		Set("calls_count", squirrel.Expr("calls_count + 1")).
		Where(squirrel.Eq{"id": windowID}).
		Where(squirrel.Expr("calls_count < max_calls")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *rateLimitRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("rate_limit_windows").
		Where(squirrel.Lt{"window_end": cutoff}).
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
