package domain

import (
	"time"
)

// SeriesFilters delimita uma consulta de série de métricas
type SeriesFilters struct {
	AccountID   string      `json:"account_id"`
	EntityLevel EntityLevel `json:"entity_level"`
	EntityID    string      `json:"entity_id,omitempty"`
	Resolution  Resolution  `json:"resolution"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
}

// MetricSeriesResponse é a resposta das leituras de dashboard/relatório
type MetricSeriesResponse struct {
	AccountID  string            `json:"account_id"`
	Resolution Resolution        `json:"resolution"`
	Filters    *SeriesFilters    `json:"filters"`
	Snapshots  []*MetricSnapshot `json:"snapshots"`
	Totals     *RawMetrics       `json:"totals,omitempty"`
	FromCache  bool              `json:"from_cache"`
}

// Aggregate soma os contadores brutos da série para exibição de totais
func (r *MetricSeriesResponse) Aggregate() {
	if len(r.Snapshots) == 0 {
		return
	}

	totals := &RawMetrics{}
	for _, s := range r.Snapshots {
		totals.Impressions += s.Impressions
		totals.Clicks += s.Clicks
		totals.Spend += s.Spend
		totals.Conversions += s.Conversions
		totals.ConversionValue += s.ConversionValue
	}
	r.Totals = totals
}
