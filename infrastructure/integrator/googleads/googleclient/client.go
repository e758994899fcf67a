package googleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	googledomain "github.com/admetrica/adsync-api/infrastructure/integrator/googleads/domain"
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/config"
	"github.com/admetrica/adsync-api/internal/domain"
)

type Client interface {
	Search(ctx context.Context, token, customerID, query, pageToken string) (*googledomain.SearchResponse, error)
}

type GoogleClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GoogleClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type searchRequest struct {
	Query     string `json:"query"`
	PageSize  int    `json:"pageSize,omitempty"`
	PageToken string `json:"pageToken,omitempty"`
}

// Search executa uma consulta GAQL no endpoint googleAds:search do cliente
func (c *GoogleClient) Search(ctx context.Context, token, customerID, query, pageToken string) (*googledomain.SearchResponse, error) {
	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.Cfg.GoogleAds.URL, customerID)

	payload, err := json.Marshal(searchRequest{
		Query:     query,
		PageSize:  c.Cfg.GoogleAds.PageSize,
		PageToken: pageToken,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição para o Google Ads")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	if c.Cfg.GoogleAds.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.Cfg.GoogleAds.LoginCustomerID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para o Google Ads")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp googledomain.ErrorResponse
		message := string(body)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}

		return nil, &platform.RemoteError{
			Platform:   domain.PlatformGoogleAds,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	var response googledomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do Google Ads")
		return nil, err
	}

	return &response, nil
}
