package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/domain"
)

var transformCfg = platform.TransformConfig{AccountID: "ACC001"}

func rawCampaign(id string) platform.RawCampaign {
	return platform.RawCampaign{
		ExternalID: id,
		Name:       "Campanha " + id,
		Status:     "ACTIVE",
		Level:      domain.EntityLevelCampaign,
	}
}

func rawRow(impressions, clicks int64, spend float64) platform.RawMetricRow {
	return platform.RawMetricRow{
		EntityExternalID:   "123",
		Level:              domain.EntityLevelCampaign,
		Resolution:         domain.ResolutionHourly,
		BucketStart:        time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		Impressions:        impressions,
		Clicks:             clicks,
		Spend:              spend,
		HasConversionValue: true,
	}
}

func TestTransform_NormalizaCampanhaEMetricas(t *testing.T) {
	transformer := NewTransformer()

	row := rawRow(1000, 50, 25.0)
	row.Conversions = 5
	row.ConversionValue = 100.0

	item, err := transformer.Transform(rawCampaign("123"), []platform.RawMetricRow{row}, transformCfg)
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformMeta, item.Campaign.Platform)
	assert.Equal(t, "ACC001", item.Campaign.AccountID)
	assert.Equal(t, domain.CampaignStatusActive, item.Campaign.Status)
	assert.Empty(t, item.Campaign.ID, "o ID interno é atribuído pelo loader, não pelo transformer")

	require.Len(t, item.Snapshots, 1)
	snapshot := item.Snapshots[0]

	// bucket canônico: hora cheia
	assert.Equal(t, time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC), snapshot.BucketStart)

	assert.Equal(t, 5.0, snapshot.CTR, "ctr = clicks/impressions*100")
	assert.Equal(t, 0.5, snapshot.CPC, "cpc = spend/clicks")
	assert.Equal(t, 25.0, snapshot.CPM, "cpm = spend/impressions*1000")
	assert.Equal(t, 4.0, snapshot.ROAS, "roas = valor/spend")
	assert.Equal(t, 5.0, snapshot.CPA, "cpa = spend/conversions")
}

func TestTransform_MapeiaStatusDoMeta(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		rawStatus string
		expected  domain.CampaignStatus
	}{
		{rawStatus: "ACTIVE", expected: domain.CampaignStatusActive},
		{rawStatus: "PAUSED", expected: domain.CampaignStatusPaused},
		{rawStatus: "DELETED", expected: domain.CampaignStatusRemoved},
		{rawStatus: "ARCHIVED", expected: domain.CampaignStatusArchived},
		{rawStatus: "CAMPAIGN_PAUSED", expected: domain.CampaignStatusPaused},
	}

	for _, tt := range tests {
		raw := rawCampaign("123")
		raw.Status = tt.rawStatus

		item, err := transformer.Transform(raw, nil, transformCfg)
		require.NoError(t, err, "status %s", tt.rawStatus)
		assert.Equal(t, tt.expected, item.Campaign.Status, "status %s", tt.rawStatus)
	}
}

func TestTransform_DivisaoPorZeroResolveParaZero(t *testing.T) {
	transformer := NewTransformer()

	item, err := transformer.Transform(rawCampaign("123"), []platform.RawMetricRow{rawRow(0, 0, 0)}, transformCfg)
	require.NoError(t, err)
	require.Len(t, item.Snapshots, 1)

	snapshot := item.Snapshots[0]
	assert.Zero(t, snapshot.CTR, "ctr com zero impressões deve ser 0, nunca NaN")
	assert.Zero(t, snapshot.CPC, "cpc com zero cliques deve ser 0, nunca NaN")
	assert.Zero(t, snapshot.CPM)
	assert.Zero(t, snapshot.ROAS)
	assert.Zero(t, snapshot.CPA)
}

func TestTransform_RejeitaContadoresNegativos(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		name string
		row  platform.RawMetricRow
	}{
		{name: "impressões negativas", row: rawRow(-1, 0, 0)},
		{name: "cliques negativos", row: rawRow(100, -5, 0)},
		{name: "gasto negativo", row: rawRow(100, 5, -1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transformer.Transform(rawCampaign("123"), []platform.RawMetricRow{tt.row}, transformCfg)
			require.Error(t, err, "contador negativo deve ser rejeitado, nunca saturado")
			assert.True(t, platform.IsValidation(err), "deve ser erro de validação")
		})
	}
}

func TestTransform_RejeitaStatusDesconhecido(t *testing.T) {
	transformer := NewTransformer()

	raw := rawCampaign("123")
	raw.Status = "IN_REVIEW"

	_, err := transformer.Transform(raw, nil, transformCfg)
	require.Error(t, err)
	assert.True(t, platform.IsValidation(err))
}

func TestTransformBatch_FalhaParcialNaoInterrompeOsDemais(t *testing.T) {
	transformer := NewTransformer()

	invalid := rawRow(100, 5, -10.0) // gasto negativo no item 2

	items := []platform.CampaignWithMetrics{
		{Campaign: rawCampaign("111"), Metrics: []platform.RawMetricRow{rawRow(100, 5, 10.0)}},
		{Campaign: rawCampaign("222"), Metrics: []platform.RawMetricRow{invalid}},
		{Campaign: rawCampaign("333"), Metrics: []platform.RawMetricRow{rawRow(200, 10, 20.0)}},
	}

	result := transformer.TransformBatch(items, transformCfg)

	assert.Len(t, result.Items, 2, "dois sucessos")
	require.Len(t, result.Errors, 1, "um erro registrado")
	assert.Equal(t, "222", result.Errors[0].ExternalID)
}
