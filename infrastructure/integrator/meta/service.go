package meta

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/admetrica/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/admetrica/adsync-api/infrastructure/integrator/meta/metaclient"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
)

// MetaIntegrator implementa platform.Connector sobre a Graph API do Meta
type MetaIntegrator struct {
	cfg         *config.Config
	Client      metaclient.Client
	transformer platform.Transformer
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:         cfg,
		Client:      client,
		transformer: NewTransformer(),
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

func (s *MetaIntegrator) Transformer() platform.Transformer {
	return s.transformer
}

// token resolve o token de acesso da conta: o secret da própria conta quando
// configurado, senão o token global da aplicação
func (s *MetaIntegrator) token(account *domain.Account) string {
	if account.SecretName != nil && *account.SecretName != "" {
		if token, ok := s.cfg.Secrets[*account.SecretName]; ok {
			return token
		}
	}
	return s.cfg.Meta.AccessToken
}

func (s *MetaIntegrator) List(ctx context.Context, account *domain.Account, level domain.EntityLevel, opts platform.ListOptions) (*platform.Page, error) {
	token := s.token(account)

	page := &platform.Page{Items: make([]platform.RawCampaign, 0)}

	switch level {
	case domain.EntityLevelCampaign:
		items, paging, err := s.Client.ListCampaigns(ctx, token, account.ExternalID, opts)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID: item.ID,
				Name:       item.Name,
				Status:     effectiveStatus(item.Status, item.EffectiveStatus),
				Level:      domain.EntityLevelCampaign,
			})
		}
		page.NextCursor = nextCursor(paging)

	case domain.EntityLevelAdSet:
		items, paging, err := s.Client.ListAdSets(ctx, token, account.ExternalID, opts)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID:       item.ID,
				ParentExternalID: item.CampaignID,
				Name:             item.Name,
				Status:           item.Status,
				Level:            domain.EntityLevelAdSet,
			})
		}
		page.NextCursor = nextCursor(paging)

	case domain.EntityLevelAd:
		items, paging, err := s.Client.ListAds(ctx, token, account.ExternalID, opts)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID:       item.ID,
				ParentExternalID: item.AdSetID,
				Name:             item.Name,
				Status:           item.Status,
				Level:            domain.EntityLevelAd,
			})
		}
		page.NextCursor = nextCursor(paging)

	default:
		// O Meta não expõe palavras-chave como entidade anunciável
		return nil, platform.NewValidationError("level", "nível de entidade não suportado pelo Meta: "+string(level))
	}

	return page, nil
}

func (s *MetaIntegrator) GetInsights(ctx context.Context, account *domain.Account, entityExternalID string, opts platform.InsightOptions) ([]platform.RawMetricRow, error) {
	insights, err := s.Client.GetInsights(ctx, s.token(account), entityExternalID, opts)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"external_id": entityExternalID,
			"error":       err.Error(),
		}).Error("Erro ao obter insights do Meta")
		return nil, err
	}

	rows := make([]platform.RawMetricRow, 0, len(insights))
	for _, insight := range insights {
		bucket, err := parseBucket(insight, opts.Resolution)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"external_id": entityExternalID,
				"date_start":  insight.DateStart,
			}).Warn("Linha de insight do Meta com bucket inválido. Pulando.")
			continue
		}

		conversions, conversionValue := insight.ConversionTotals(parseFloat)

		rows = append(rows, platform.RawMetricRow{
			EntityExternalID:   entityExternalID,
			Level:              opts.Level,
			Resolution:         opts.Resolution,
			BucketStart:        bucket,
			Impressions:        parseInt(insight.Impressions),
			Clicks:             parseInt(insight.Clicks),
			Spend:              parseFloat(insight.Spend),
			Conversions:        conversions,
			ConversionValue:    conversionValue,
			HasConversionValue: true,
		})
	}

	return rows, nil
}

// parseBucket converte (date_start, janela horária) no início do bucket
func parseBucket(insight metadomain.Insight, resolution domain.Resolution) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, insight.DateStart)
	if err != nil {
		return time.Time{}, err
	}

	if resolution == domain.ResolutionHourly && insight.HourlyWindow != "" {
		// formato "13:00:00 - 13:59:59"; só a hora inicial importa
		start := strings.SplitN(insight.HourlyWindow, " ", 2)[0]
		hour, err := strconv.Atoi(strings.SplitN(start, ":", 2)[0])
		if err == nil && hour >= 0 && hour < 24 {
			date = date.Add(time.Duration(hour) * time.Hour)
		}
	}

	return date.UTC(), nil
}

func effectiveStatus(status, effective string) string {
	if effective != "" {
		return effective
	}
	return status
}

func nextCursor(paging *metadomain.Paging) string {
	if paging == nil || paging.Next == "" {
		return ""
	}
	return paging.Cursors.After
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
