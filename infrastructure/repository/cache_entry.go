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
	cacheEntriesTable = "cache_entries ce"
)

type CacheEntryRepository interface {
	Get(ctx context.Context, key string) (*domain.CacheEntry, error)
	SaveOrUpdate(ctx context.Context, entry *domain.CacheEntry) error
	Touch(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, substring string) (int64, error)
	DeleteByResource(ctx context.Context, resourceType, resourceID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type cacheEntryRepository struct {
	conn *postgres.Connection
}

func NewCacheEntryRepository(conn *postgres.Connection) CacheEntryRepository {
	return &cacheEntryRepository{
		conn: conn,
	}
}

func (r *cacheEntryRepository) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	query, args, err := squirrel.
		Select("ce.key, ce.payload, ce.expires_at, ce.hit_count, ce.last_accessed_at, ce.resource_type, ce.resource_id, ce.created_at").
		From(cacheEntriesTable).
		Where(squirrel.Eq{"ce.key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.CacheEntry{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&entry.Key,
		&entry.Payload,
		&entry.ExpiresAt,
		&entry.HitCount,
		&entry.LastAccessedAt,
		&entry.ResourceType,
		&entry.ResourceID,
		&entry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear entrada de cache: %w", err)
	}

	return entry, nil
}

// SaveOrUpdate grava a entrada pela chave; em repopulação o contador de hits
// volta a zero e o prazo de validade é renovado
func (r *cacheEntryRepository) SaveOrUpdate(ctx context.Context, entry *domain.CacheEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("cache_entries").
		Columns("key", "payload", "expires_at", "hit_count", "last_accessed_at", "resource_type", "resource_id").
		Values(
			entry.Key,
			entry.Payload,
			entry.ExpiresAt,
			0,
			time.Now().UTC(),
			entry.ResourceType,
			entry.ResourceID,
		).
		Suffix(`
			ON CONFLICT (key) DO UPDATE SET
				payload = EXCLUDED.payload,
				expires_at = EXCLUDED.expires_at,
				hit_count = 0,
				last_accessed_at = EXCLUDED.last_accessed_at,
				resource_type = EXCLUDED.resource_type,
				resource_id = EXCLUDED.resource_id
		`).
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

// Touch incrementa o contador de hits e atualiza o último acesso no banco,
// em uma única instrução atômica
func (r *cacheEntryRepository) Touch(ctx context.Context, key string) error {
	query, args, err := squirrel.
		Update("cache_entries").
		Set("hit_count", squirrel.Expr("hit_count + 1")).
		Set("last_accessed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"key": key}).
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

func (r *cacheEntryRepository) Delete(ctx context.Context, key string) error {
	query, args, err := squirrel.
		Delete("cache_entries").
		Where(squirrel.Eq{"key": key}).
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

func (r *cacheEntryRepository) DeleteByPattern(ctx context.Context, substring string) (int64, error) {
	query, args, err := squirrel.
		Delete("cache_entries").
		Where(squirrel.Like{"key": "%" + substring + "%"}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execCount(ctx, query, args)
}

func (r *cacheEntryRepository) DeleteByResource(ctx context.Context, resourceType, resourceID string) (int64, error) {
	query, args, err := squirrel.
		Delete("cache_entries").
		Where(squirrel.Eq{"resource_type": resourceType, "resource_id": resourceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execCount(ctx, query, args)
}

func (r *cacheEntryRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("cache_entries").
		Where(squirrel.Lt{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execCount(ctx, query, args)
}

func (r *cacheEntryRepository) execCount(ctx context.Context, query string, args []interface{}) (int64, error) {
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
