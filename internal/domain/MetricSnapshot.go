package domain

import (
	"time"

	"github.com/admetrica/adsync-api/pkg/utils"
)

type Resolution string

const (
	ResolutionHourly  Resolution = "hourly"
	ResolutionDaily   Resolution = "daily"
	ResolutionMonthly Resolution = "monthly"
)

type EntityLevel string

const (
	EntityLevelCampaign EntityLevel = "campaign"
	EntityLevelAdSet    EntityLevel = "adset"
	EntityLevelAd       EntityLevel = "ad"
	EntityLevelKeyword  EntityLevel = "keyword"
)

// RawMetrics agrupa os contadores brutos reportados pelas plataformas
type RawMetrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Spend           float64 `json:"spend"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
}

// DerivedMetrics agrupa as métricas derivadas, sempre recalculadas na escrita
type DerivedMetrics struct {
	CTR  float64 `json:"ctr"`
	CPC  float64 `json:"cpc"`
	CPM  float64 `json:"cpm"`
	ROAS float64 `json:"roas"`
	CPA  float64 `json:"cpa"`
}

// MetricSnapshot representa uma medição de métricas de uma entidade em um bucket de
// tempo. Existe no máximo uma linha por (entity_level, entity_id, bucket) em cada
// resolução, garantido pela chave de upsert.
type MetricSnapshot struct {
	ID          int64       `json:"id"`
	AccountID   string      `json:"account_id"`
	EntityLevel EntityLevel `json:"entity_level"`
	EntityID    string      `json:"entity_id"`
	Resolution  Resolution  `json:"resolution"`
	BucketStart time.Time   `json:"bucket_start"`
	RawMetrics
	DerivedMetrics
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeBucket reduz um instante à forma canônica da resolução:
// hora cheia, meia-noite UTC ou primeiro dia do mês.
func NormalizeBucket(t time.Time, resolution Resolution) time.Time {
	t = t.UTC()
	switch resolution {
	case ResolutionHourly:
		return t.Truncate(time.Hour)
	case ResolutionDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case ResolutionMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// ComputeDerived recalcula as métricas derivadas a partir dos contadores brutos.
// Divisões por zero resolvem para 0 porque a agregação soma e tira média
// desses campos depois.
func (m *MetricSnapshot) ComputeDerived() {
	m.DerivedMetrics = DerivedMetrics{}

	if m.Impressions > 0 {
		m.CTR = utils.RoundWithTwoDecimalPlace(float64(m.Clicks) / float64(m.Impressions) * 100)
		m.CPM = utils.RoundWithTwoDecimalPlace(m.Spend / float64(m.Impressions) * 1000)
	}
	if m.Clicks > 0 {
		m.CPC = utils.RoundWithTwoDecimalPlace(m.Spend / float64(m.Clicks))
	}
	if m.Spend > 0 {
		m.ROAS = utils.RoundWithTwoDecimalPlace(m.ConversionValue / m.Spend)
	}
	if m.Conversions > 0 {
		m.CPA = utils.RoundWithTwoDecimalPlace(m.Spend / m.Conversions)
	}
}

// IsEmpty indica se a medição não trouxe nenhum contador
func (m *MetricSnapshot) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.Impressions == 0 && m.Clicks == 0 && m.Spend == 0 && m.Conversions == 0
}
