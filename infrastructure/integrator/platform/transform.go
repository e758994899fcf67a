package platform

import (
	"strings"

	"github.com/admetrica/adsync-api/internal/domain"
)

// NormalizeCampaign valida e converte um envelope bruto em uma campanha
// normalizada usando o vocabulário de status da plataforma. O ID interno fica
// vazio: é o loader quem o atribui no upsert.
func NormalizeCampaign(raw RawCampaign, statusMap map[string]domain.CampaignStatus, p domain.Platform, cfg TransformConfig) (*domain.Campaign, error) {
	if raw.ExternalID == "" {
		return nil, NewValidationError("external_id", "identificador obrigatório ausente")
	}
	if raw.Name == "" {
		return nil, NewValidationError("name", "nome obrigatório ausente")
	}

	status, ok := statusMap[strings.ToUpper(raw.Status)]
	if !ok {
		return nil, NewValidationError("status", "status desconhecido: "+raw.Status)
	}

	return &domain.Campaign{
		AccountID:  cfg.AccountID,
		Platform:   p,
		ExternalID: raw.ExternalID,
		Name:       raw.Name,
		Status:     status,
	}, nil
}

// NormalizeRow valida e converte uma linha bruta de métricas em um snapshot
// normalizado. Contadores negativos são rejeitados, nunca saturados em zero;
// razões derivadas são recalculadas com divisão por zero resolvendo para 0.
func NormalizeRow(row RawMetricRow, cfg TransformConfig) (*domain.MetricSnapshot, error) {
	if row.Impressions < 0 {
		return nil, NewValidationError("impressions", "contador negativo")
	}
	if row.Clicks < 0 {
		return nil, NewValidationError("clicks", "contador negativo")
	}
	if row.Spend < 0 {
		return nil, NewValidationError("spend", "contador negativo")
	}
	if row.Conversions < 0 {
		return nil, NewValidationError("conversions", "contador negativo")
	}
	if row.ConversionValue < 0 {
		return nil, NewValidationError("conversion_value", "contador negativo")
	}
	if row.BucketStart.IsZero() {
		return nil, NewValidationError("bucket_start", "bucket de tempo ausente")
	}

	conversionValue := row.ConversionValue
	if !row.HasConversionValue {
		// A plataforma não reporta receita nativa: deriva da constante de
		// receita por conversão configurada na conta
		conversionValue = row.Conversions * cfg.RevenuePerConversion
	}

	snapshot := &domain.MetricSnapshot{
		AccountID:   cfg.AccountID,
		EntityLevel: row.Level,
		EntityID:    row.EntityExternalID,
		Resolution:  row.Resolution,
		BucketStart: domain.NormalizeBucket(row.BucketStart, row.Resolution),
		RawMetrics: domain.RawMetrics{
			Impressions:     row.Impressions,
			Clicks:          row.Clicks,
			Spend:           row.Spend,
			Conversions:     row.Conversions,
			ConversionValue: conversionValue,
		},
	}
	snapshot.ComputeDerived()

	return snapshot, nil
}

// TransformOne aplica a normalização completa de um item (campanha + métricas)
func TransformOne(raw RawCampaign, rows []RawMetricRow, statusMap map[string]domain.CampaignStatus, p domain.Platform, cfg TransformConfig) (*NormalizedItem, error) {
	campaign, err := NormalizeCampaign(raw, statusMap, p, cfg)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*domain.MetricSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := NormalizeRow(row, cfg)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return &NormalizedItem{Campaign: campaign, Snapshots: snapshots}, nil
}

// TransformAll processa um lote continuando após falhas individuais: cada item
// rejeitado vira um ItemError e os demais seguem normalmente
func TransformAll(items []CampaignWithMetrics, statusMap map[string]domain.CampaignStatus, p domain.Platform, cfg TransformConfig) *BatchTransformResult {
	result := &BatchTransformResult{
		Items:  make([]*NormalizedItem, 0, len(items)),
		Errors: make([]ItemError, 0),
	}

	for _, item := range items {
		normalized, err := TransformOne(item.Campaign, item.Metrics, statusMap, p, cfg)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				ExternalID: item.Campaign.ExternalID,
				Error:      err.Error(),
			})
			continue
		}
		result.Items = append(result.Items, normalized)
	}

	return result
}
