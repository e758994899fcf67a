// Package platform define os contratos compartilhados entre os conectores de
// plataformas de anúncios. Cada plataforma implementa Connector e Transformer
// sobre os mesmos envelopes brutos, de modo que loader e orquestrador não
// conhecem nenhuma plataforma em particular.
package platform

import (
	"context"
	"time"

	"github.com/admetrica/adsync-api/internal/domain"
)

// RawCampaign é o envelope bruto de uma entidade anunciável (campanha, conjunto
// de anúncios ou anúncio) como veio da plataforma, antes de qualquer validação
type RawCampaign struct {
	ExternalID       string
	ParentExternalID string
	Name             string
	Status           string
	Level            domain.EntityLevel
}

// RawMetricRow é uma linha bruta de métricas de um relatório da plataforma
type RawMetricRow struct {
	EntityExternalID string
	Level            domain.EntityLevel
	Resolution       domain.Resolution
	BucketStart      time.Time
	Impressions      int64
	Clicks           int64
	Spend            float64
	Conversions      float64
	ConversionValue  float64
	// HasConversionValue indica se a plataforma reporta receita nativa;
	// quando falso, o transformer deriva a receita da configuração da conta
	HasConversionValue bool
}

// Page é uma página de resultados de listagem com cursor opaco
type Page struct {
	Items      []RawCampaign
	NextCursor string
}

// ListOptions parametriza uma chamada de listagem paginada
type ListOptions struct {
	Limit  int
	Cursor string
}

// InsightOptions parametriza uma consulta de métricas
type InsightOptions struct {
	Level      domain.EntityLevel
	Resolution domain.Resolution
	StartDate  time.Time
	EndDate    time.Time
}

// TransformConfig carrega a identidade do dono e os parâmetros de derivação
// específicos da conta
type TransformConfig struct {
	AccountID            string
	RevenuePerConversion float64
}

// ItemError registra a falha de um item dentro de um lote
type ItemError struct {
	ExternalID string `json:"external_id"`
	Error      string `json:"error"`
}

// CampaignWithMetrics agrupa uma entidade bruta e suas linhas de métricas
// para transformação em lote
type CampaignWithMetrics struct {
	Campaign RawCampaign
	Metrics  []RawMetricRow
}

// NormalizedItem é o resultado de uma transformação bem-sucedida
type NormalizedItem struct {
	Campaign  *domain.Campaign
	Snapshots []*domain.MetricSnapshot
}

// BatchTransformResult acumula sucessos e falhas de um lote. Uma falha de item
// nunca interrompe os demais.
type BatchTransformResult struct {
	Items  []*NormalizedItem
	Errors []ItemError
}

// Transformer mapeia a resposta bruta de uma plataforma para o par normalizado
// (Campaign, MetricSnapshots). Implementações são funções puras: nenhum I/O,
// mesmo resultado para a mesma entrada.
type Transformer interface {
	Platform() domain.Platform
	Validate(raw RawCampaign, rows []RawMetricRow) error
	Transform(raw RawCampaign, rows []RawMetricRow, cfg TransformConfig) (*NormalizedItem, error)
	TransformBatch(items []CampaignWithMetrics, cfg TransformConfig) *BatchTransformResult
}

// Connector expõe uma plataforma remota: listagem paginada por nível de
// entidade e consulta de métricas. As chamadas já saem embrulhadas em retry
// e passam pelo limitador de chamadas no orquestrador.
type Connector interface {
	Platform() domain.Platform
	Transformer() Transformer
	List(ctx context.Context, account *domain.Account, level domain.EntityLevel, opts ListOptions) (*Page, error)
	GetInsights(ctx context.Context, account *domain.Account, entityExternalID string, opts InsightOptions) ([]RawMetricRow, error)
}
