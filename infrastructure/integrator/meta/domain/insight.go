package metadomain

// A Graph API devolve contadores numéricos como strings; a conversão acontece
// no integrador, antes do transformer

// Action é um par (tipo de ação, valor) dos relatórios de insights
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha bruta do endpoint /insights
type Insight struct {
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Spend        string   `json:"spend"`
	Actions      []Action `json:"actions,omitempty"`
	ActionValues []Action `json:"action_values,omitempty"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	// HourlyWindow vem preenchido quando o breakdown horário é solicitado,
	// no formato "13:00:00 - 13:59:59"
	HourlyWindow string `json:"hourly_stats_aggregated_by_advertiser_time_zone,omitempty"`
}

// tipos de ação que contam como conversão nos relatórios do Meta
const (
	ActionTypePurchase         = "purchase"
	ActionTypeOffsiteConversao = "offsite_conversion.fb_pixel_purchase"
)

// ConversionTotals extrai conversões e valor de conversão das listas de ações
func (i *Insight) ConversionTotals(parse func(string) float64) (conversions, value float64) {
	for _, a := range i.Actions {
		if a.ActionType == ActionTypePurchase || a.ActionType == ActionTypeOffsiteConversao {
			conversions += parse(a.Value)
		}
	}
	for _, a := range i.ActionValues {
		if a.ActionType == ActionTypePurchase || a.ActionType == ActionTypeOffsiteConversao {
			value += parse(a.Value)
		}
	}
	return conversions, value
}
