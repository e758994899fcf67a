package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/admetrica/adsync-api/infrastructure/integrator/meta/domain"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
	"github.com/admetrica/adsync-api/pkg/utils"
)

type Client interface {
	ListCampaigns(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.Campaign, *metadomain.Paging, error)
	ListAdSets(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.AdSet, *metadomain.Paging, error)
	ListAds(ctx context.Context, token, accountExternalID string, opts platform.ListOptions) ([]metadomain.Ad, *metadomain.Paging, error)
	GetInsights(ctx context.Context, token, entityExternalID string, opts platform.InsightOptions) ([]metadomain.Insight, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doGet executa uma requisição GET na Graph API e devolve o corpo da resposta
func (c *MetaClient) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para a Graph API")
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a Graph API")
		return nil, err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

// handleResponse lê o corpo e converte respostas de erro da Graph API em
// RemoteError com o status normalizado: throttling vira 429 e problemas de
// token viram 401, independente do status HTTP cru que o Meta devolveu
func (c *MetaClient) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	logrus.WithField("status", resp.StatusCode).Debugf("Resposta de erro da Graph API: %s", utils.PrettyJson(body))

	var errResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return nil, &platform.RemoteError{
			Platform:   domain.PlatformMeta,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	status := resp.StatusCode
	switch {
	case errResp.IsRateLimited():
		status = http.StatusTooManyRequests
	case errResp.IsAuthError():
		status = http.StatusUnauthorized
	}

	return nil, &platform.RemoteError{
		Platform:   domain.PlatformMeta,
		StatusCode: status,
		Message:    errResp.Error.Message,
	}
}

// listParams monta os parâmetros comuns de paginação das listagens
func listParams(token, fields string, opts platform.ListOptions) url.Values {
	params := url.Values{}
	params.Add("fields", fields)
	params.Add("access_token", token)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	params.Add("limit", fmt.Sprintf("%d", limit))

	if opts.Cursor != "" {
		params.Add("after", opts.Cursor)
	}

	return params
}
