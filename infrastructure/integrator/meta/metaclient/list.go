package metaclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	metadomain "github.com/admetrica/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
)

type responseCampaigns struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

type responseAdSets struct {
	Data   []metadomain.AdSet `json:"data"`
	Paging metadomain.Paging  `json:"paging"`
}

type responseAds struct {
	Data   []metadomain.Ad   `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

func (c *MetaClient) ListCampaigns(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.Campaign, *metadomain.Paging, error) {
	path := fmt.Sprintf("act_%s/campaigns", accountExternalID)
	params := listParams(token, "id,name,status,effective_status", opts)

	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	var response responseCampaigns
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de campanhas do Meta")
		return nil, nil, err
	}

	return response.Data, &response.Paging, nil
}

func (c *MetaClient) ListAdSets(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.AdSet, *metadomain.Paging, error) {
	path := fmt.Sprintf("act_%s/adsets", accountExternalID)
	params := listParams(token, "id,name,status,campaign_id", opts)

	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	var response responseAdSets
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de conjuntos de anúncios do Meta")
		return nil, nil, err
	}

	return response.Data, &response.Paging, nil
}

func (c *MetaClient) ListAds(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.Ad, *metadomain.Paging, error) {
	path := fmt.Sprintf("act_%s/ads", accountExternalID)
	params := listParams(token, "id,name,status,adset_id", opts)

	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	var response responseAds
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de anúncios do Meta")
		return nil, nil, err
	}

	return response.Data, &response.Paging, nil
}
