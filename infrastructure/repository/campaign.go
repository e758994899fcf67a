package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/admetrica/adsync-api/infrastructure/database/postgres"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/pkg/utils"
)

const (
	campaignsTable = "campaigns c"
)

// UpsertResult informa o id interno resultante e se a linha foi inserida ou
// atualizada, para a contagem exata de created/updated do loader
type UpsertResult struct {
	ID       string
	Inserted bool
}

type CampaignRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	GetByNaturalKey(ctx context.Context, p domain.Platform, externalID, accountID string) (*domain.Campaign, error)
	ListByAccount(ctx context.Context, accountID string, availableStatus []domain.CampaignStatus) ([]*domain.Campaign, error)
	Upsert(ctx context.Context, campaign *domain.Campaign) (*UpsertResult, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = "c.id, c.account_id, c.platform, c.external_id, c.name, c.status, c.created_at, c.updated_at"

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.getCampaign(ctx, squirrel.Eq{"c.id": id})
}

func (r *campaignRepository) GetByNaturalKey(ctx context.Context, p domain.Platform, externalID, accountID string) (*domain.Campaign, error) {
	return r.getCampaign(ctx, squirrel.Eq{
		"c.platform":    p,
		"c.external_id": externalID,
		"c.account_id":  accountID,
	})
}

func (r *campaignRepository) getCampaign(ctx context.Context, whereClause squirrel.Eq) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign := &domain.Campaign{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&campaign.ID,
		&campaign.AccountID,
		&campaign.Platform,
		&campaign.ExternalID,
		&campaign.Name,
		&campaign.Status,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListByAccount(ctx context.Context, accountID string, availableStatus []domain.CampaignStatus) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": availableStatus})
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.Platform,
			&campaign.ExternalID,
			&campaign.Name,
			&campaign.Status,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// Upsert insere ou atualiza a campanha pela identidade natural
// (platform, external_id, account_id). No conflito, só os campos mutáveis
// (name, status) mudam; id e created_at são preservados. O RETURNING com
// "xmax = 0" distingue inserção de atualização na mesma viagem ao banco.
func (r *campaignRepository) Upsert(ctx context.Context, campaign *domain.Campaign) (*UpsertResult, error) {
	if campaign.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id da campanha: %w", err)
		}
		campaign.ID = id
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "account_id", "platform", "external_id", "name", "status").
		Values(
			campaign.ID,
			campaign.AccountID,
			campaign.Platform,
			campaign.ExternalID,
			campaign.Name,
			campaign.Status,
		).
		Suffix(`
			ON CONFLICT (platform, external_id, account_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				updated_at = NOW()
			RETURNING id, (xmax = 0) AS inserted
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result := &UpsertResult{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&result.ID, &result.Inserted)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	campaign.ID = result.ID
	return result, nil
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
