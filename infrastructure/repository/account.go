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
	accountsTable = "accounts a"
)

type AccountRepository interface {
	GetByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetByExternalID(ctx context.Context, p domain.Platform, externalID string) (*domain.Account, error)
	List(ctx context.Context, availableStatus []domain.AccountStatus) ([]*domain.Account, error)
	SaveOrUpdate(ctx context.Context, account *domain.Account) error
	AdvanceLastSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

const accountColumns = "a.id, a.platform, a.external_id, a.name, a.nickname, a.secret_name, a.status, a.revenue_per_conversion, a.last_synced_at, a.created_at, a.updated_at"

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

func (r *accountRepository) GetByExternalID(ctx context.Context, p domain.Platform, externalID string) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.platform": p, "a.external_id": externalID})
}

func (r *accountRepository) getAccount(ctx context.Context, whereClause squirrel.Eq) (*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)
	account, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return account, nil
}

func (r *accountRepository) List(ctx context.Context, availableStatus []domain.AccountStatus) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select(accountColumns).
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Platform,
			&account.ExternalID,
			&account.Name,
			&account.Nickname,
			&account.SecretName,
			&account.Status,
			&account.RevenuePerConversion,
			&account.LastSyncedAt,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) SaveOrUpdate(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da conta: %w", err)
		}
		account.ID = id
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "platform", "external_id", "name", "nickname", "secret_name", "status", "revenue_per_conversion").
		Values(
			account.ID,
			account.Platform,
			account.ExternalID,
			account.Name,
			account.Nickname,
			account.SecretName,
			account.Status,
			account.RevenuePerConversion,
		).
		Suffix(`
			ON CONFLICT (platform, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				nickname = EXCLUDED.nickname,
				secret_name = EXCLUDED.secret_name,
				status = EXCLUDED.status,
				revenue_per_conversion = EXCLUDED.revenue_per_conversion,
				updated_at = NOW()
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

// AdvanceLastSyncedAt avança o carimbo de última sincronização da conta.
// Só avança: um syncedAt anterior ao valor atual é ignorado.
func (r *accountRepository) AdvanceLastSyncedAt(ctx context.Context, accountID string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update("accounts").
		Set("last_synced_at", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		Where(squirrel.Or{
			squirrel.Expr("last_synced_at IS NULL"),
			squirrel.Lt{"last_synced_at": syncedAt},
		}).
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

func scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	if err := row.Scan(
		&account.ID,
		&account.Platform,
		&account.ExternalID,
		&account.Name,
		&account.Nickname,
		&account.SecretName,
		&account.Status,
		&account.RevenuePerConversion,
		&account.LastSyncedAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return account, nil
}
