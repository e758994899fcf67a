package googleads

import (
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/domain"
)

// googleStatusMap traduz o vocabulário de status do Google Ads
var googleStatusMap = map[string]domain.CampaignStatus{
	"ENABLED": domain.CampaignStatusActive,
	"PAUSED":  domain.CampaignStatusPaused,
	"REMOVED": domain.CampaignStatusRemoved,
}

// Transformer normaliza respostas brutas do Google Ads. A receita de conversão
// é derivada da constante configurada na conta, já que a consulta não traz
// valor nativo.
type Transformer struct{}

func NewTransformer() platform.Transformer {
	return &Transformer{}
}

func (t *Transformer) Platform() domain.Platform {
	return domain.PlatformGoogleAds
}

func (t *Transformer) Validate(raw platform.RawCampaign, rows []platform.RawMetricRow) error {
	if _, err := platform.NormalizeCampaign(raw, googleStatusMap, domain.PlatformGoogleAds, platform.TransformConfig{AccountID: "-"}); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := platform.NormalizeRow(row, platform.TransformConfig{AccountID: "-"}); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transformer) Transform(raw platform.RawCampaign, rows []platform.RawMetricRow, cfg platform.TransformConfig) (*platform.NormalizedItem, error) {
	return platform.TransformOne(raw, rows, googleStatusMap, domain.PlatformGoogleAds, cfg)
}

func (t *Transformer) TransformBatch(items []platform.CampaignWithMetrics, cfg platform.TransformConfig) *platform.BatchTransformResult {
	return platform.TransformAll(items, googleStatusMap, domain.PlatformGoogleAds, cfg)
}
