package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/admetrica/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/domain"
)

type responseInsights struct {
	Data   []metadomain.Insight `json:"data"`
	Paging metadomain.Paging    `json:"paging"`
}

func (c *MetaClient) GetInsights(ctx context.Context, token, entityExternalID string, opts platform.InsightOptions) ([]metadomain.Insight, error) {
	path := fmt.Sprintf("%s/insights", entityExternalID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		opts.StartDate.Format(time.DateOnly), opts.EndDate.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", "impressions,clicks,spend,actions,action_values,date_start,date_stop")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("access_token", token)

	if opts.Resolution == domain.ResolutionHourly {
		params.Add("breakdowns", "hourly_stats_aggregated_by_advertiser_time_zone")
	}

	body, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var response responseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights do Meta")
		return nil, err
	}

	return response.Data, nil
}
