package meta

import (
	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/domain"
)

// metaStatusMap traduz o vocabulário de status do Meta para o ciclo de vida
// normalizado. DELETED vira "removed": a campanha some da origem mas nunca é
// apagada do armazenamento local.
var metaStatusMap = map[string]domain.CampaignStatus{
	"ACTIVE":   domain.CampaignStatusActive,
	"PAUSED":   domain.CampaignStatusPaused,
	"DELETED":  domain.CampaignStatusRemoved,
	"ARCHIVED": domain.CampaignStatusArchived,
	// effective_status traz variantes herdadas do nível acima
	"CAMPAIGN_PAUSED": domain.CampaignStatusPaused,
	"ADSET_PAUSED":    domain.CampaignStatusPaused,
}

// Transformer normaliza respostas brutas do Meta. Função pura: sem I/O,
// entrada igual produz saída igual.
type Transformer struct{}

func NewTransformer() platform.Transformer {
	return &Transformer{}
}

func (t *Transformer) Platform() domain.Platform {
	return domain.PlatformMeta
}

func (t *Transformer) Validate(raw platform.RawCampaign, rows []platform.RawMetricRow) error {
	if _, err := platform.NormalizeCampaign(raw, metaStatusMap, domain.PlatformMeta, platform.TransformConfig{AccountID: "-"}); err != nil {
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
	return platform.TransformOne(raw, rows, metaStatusMap, domain.PlatformMeta, cfg)
}

func (t *Transformer) TransformBatch(items []platform.CampaignWithMetrics, cfg platform.TransformConfig) *platform.BatchTransformResult {
	return platform.TransformAll(items, metaStatusMap, domain.PlatformMeta, cfg)
}
