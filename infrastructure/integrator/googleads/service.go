package googleads

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/integrator/googleads/googleclient"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
)

// GoogleAdsIntegrator implementa platform.Connector sobre a API de relatórios
// do Google Ads
type GoogleAdsIntegrator struct {
	cfg         *config.Config
	Client      googleclient.Client
	transformer platform.Transformer
}

func New(cfg *config.Config, client googleclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:         cfg,
		Client:      client,
		transformer: NewTransformer(),
	}
}

func (s *GoogleAdsIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogleAds
}

func (s *GoogleAdsIntegrator) Transformer() platform.Transformer {
	return s.transformer
}

func (s *GoogleAdsIntegrator) token(account *domain.Account) string {
	if account.SecretName != nil && *account.SecretName != "" {
		if token, ok := s.cfg.Secrets[*account.SecretName]; ok {
			return token
		}
	}
	return s.cfg.GoogleAds.AccessToken
}

// listQueries são as consultas GAQL de listagem por nível de entidade
var listQueries = map[domain.EntityLevel]string{
	domain.EntityLevelCampaign: "SELECT campaign.id, campaign.name, campaign.status FROM campaign",
	domain.EntityLevelAdSet:    "SELECT ad_group.id, ad_group.name, ad_group.status, ad_group.campaign FROM ad_group",
	domain.EntityLevelAd:       "SELECT ad_group_ad.ad.id, ad_group_ad.ad.name, ad_group_ad.status, ad_group_ad.ad_group FROM ad_group_ad",
}

func (s *GoogleAdsIntegrator) List(ctx context.Context, account *domain.Account, level domain.EntityLevel, opts platform.ListOptions) (*platform.Page, error) {
	query, ok := listQueries[level]
	if !ok {
		return nil, platform.NewValidationError("level", "nível de entidade não suportado pelo Google Ads: "+string(level))
	}

	response, err := s.Client.Search(ctx, s.token(account), account.ExternalID, query, opts.Cursor)
	if err != nil {
		return nil, err
	}

	page := &platform.Page{
		Items:      make([]platform.RawCampaign, 0, len(response.Results)),
		NextCursor: response.NextPageToken,
	}

	for _, result := range response.Results {
		switch {
		case level == domain.EntityLevelCampaign && result.Campaign != nil:
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID: strconv.FormatInt(result.Campaign.ID, 10),
				Name:       result.Campaign.Name,
				Status:     result.Campaign.Status,
				Level:      domain.EntityLevelCampaign,
			})
		case level == domain.EntityLevelAdSet && result.AdGroup != nil:
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID:       strconv.FormatInt(result.AdGroup.ID, 10),
				ParentExternalID: result.AdGroup.Campaign,
				Name:             result.AdGroup.Name,
				Status:           result.AdGroup.Status,
				Level:            domain.EntityLevelAdSet,
			})
		case level == domain.EntityLevelAd && result.AdGroupAd != nil:
			page.Items = append(page.Items, platform.RawCampaign{
				ExternalID:       strconv.FormatInt(result.AdGroupAd.Ad.ID, 10),
				ParentExternalID: result.AdGroupAd.AdGroup,
				Name:             result.AdGroupAd.Ad.Name,
				Status:           result.AdGroupAd.Status,
				Level:            domain.EntityLevelAd,
			})
		}
	}

	return page, nil
}

func (s *GoogleAdsIntegrator) GetInsights(ctx context.Context, account *domain.Account, entityExternalID string, opts platform.InsightOptions) ([]platform.RawMetricRow, error) {
	segments := "segments.date"
	if opts.Resolution == domain.ResolutionHourly {
		segments += ", segments.hour"
	}

	query := fmt.Sprintf(
		"SELECT campaign.id, metrics.impressions, metrics.clicks, metrics.cost_micros, metrics.conversions, %s "+
			"FROM campaign WHERE campaign.id = %s AND segments.date BETWEEN '%s' AND '%s'",
		segments,
		entityExternalID,
		opts.StartDate.Format(time.DateOnly),
		opts.EndDate.Format(time.DateOnly),
	)

	rows := make([]platform.RawMetricRow, 0)
	pageToken := ""

	for {
		response, err := s.Client.Search(ctx, s.token(account), account.ExternalID, query, pageToken)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id":  account.ID,
				"external_id": entityExternalID,
				"error":       err.Error(),
			}).Error("Erro ao obter métricas do Google Ads")
			return nil, err
		}

		for _, result := range response.Results {
			if result.Metrics == nil || result.Segments == nil {
				continue
			}

			bucket, err := time.Parse(time.DateOnly, result.Segments.Date)
			if err != nil {
				logrus.WithField("date", result.Segments.Date).Warn("Linha do Google Ads com data inválida. Pulando.")
				continue
			}
			if opts.Resolution == domain.ResolutionHourly && result.Segments.Hour != nil {
				bucket = bucket.Add(time.Duration(*result.Segments.Hour) * time.Hour)
			}

			rows = append(rows, platform.RawMetricRow{
				EntityExternalID: entityExternalID,
				Level:            opts.Level,
				Resolution:       opts.Resolution,
				BucketStart:      bucket.UTC(),
				Impressions:      result.Metrics.Impressions,
				Clicks:           result.Metrics.Clicks,
				Spend:            float64(result.Metrics.CostMicros) / 1e6,
				Conversions:      result.Metrics.Conversions,
				// O Google Ads não traz receita nativa nesta consulta: a
				// derivação acontece no transformer via configuração da conta
				HasConversionValue: false,
			})
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return rows, nil
}
