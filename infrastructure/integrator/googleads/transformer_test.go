package googleads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/internal/domain"
)

func TestTransform_DerivaReceitaDaConstanteConfigurada(t *testing.T) {
	transformer := NewTransformer()

	raw := platform.RawCampaign{
		ExternalID: "987654",
		Name:       "Campanha Search",
		Status:     "ENABLED",
		Level:      domain.EntityLevelCampaign,
	}

	row := platform.RawMetricRow{
		EntityExternalID: "987654",
		Level:            domain.EntityLevelCampaign,
		Resolution:       domain.ResolutionHourly,
		BucketStart:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		Impressions:      500,
		Clicks:           25,
		Spend:            50.0,
		Conversions:      4,
		// sem receita nativa na origem
		HasConversionValue: false,
	}

	cfg := platform.TransformConfig{AccountID: "ACC002", RevenuePerConversion: 80.0}

	item, err := transformer.Transform(raw, []platform.RawMetricRow{row}, cfg)
	require.NoError(t, err)
	require.Len(t, item.Snapshots, 1)

	snapshot := item.Snapshots[0]
	assert.Equal(t, 320.0, snapshot.ConversionValue, "4 conversões x R$80 por conversão")
	assert.Equal(t, 6.4, snapshot.ROAS, "roas calculado sobre a receita derivada")
}

func TestTransform_MapeiaStatusDoGoogle(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		rawStatus string
		expected  domain.CampaignStatus
	}{
		{rawStatus: "ENABLED", expected: domain.CampaignStatusActive},
		{rawStatus: "PAUSED", expected: domain.CampaignStatusPaused},
		{rawStatus: "REMOVED", expected: domain.CampaignStatusRemoved},
	}

	for _, tt := range tests {
		raw := platform.RawCampaign{
			ExternalID: "987654",
			Name:       "Campanha",
			Status:     tt.rawStatus,
			Level:      domain.EntityLevelCampaign,
		}

		item, err := transformer.Transform(raw, nil, platform.TransformConfig{AccountID: "ACC002"})
		require.NoError(t, err, "status %s", tt.rawStatus)
		assert.Equal(t, tt.expected, item.Campaign.Status, "status %s", tt.rawStatus)
	}
}

func TestTransform_SemConversoesReceitaDerivadaEZero(t *testing.T) {
	transformer := NewTransformer()

	raw := platform.RawCampaign{
		ExternalID: "987654",
		Name:       "Campanha",
		Status:     "ENABLED",
		Level:      domain.EntityLevelCampaign,
	}

	row := platform.RawMetricRow{
		EntityExternalID: "987654",
		Level:            domain.EntityLevelCampaign,
		Resolution:       domain.ResolutionDaily,
		BucketStart:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Impressions:      100,
	}

	cfg := platform.TransformConfig{AccountID: "ACC002", RevenuePerConversion: 80.0}

	item, err := transformer.Transform(raw, []platform.RawMetricRow{row}, cfg)
	require.NoError(t, err)
	require.Len(t, item.Snapshots, 1)

	assert.Zero(t, item.Snapshots[0].ConversionValue)
	assert.Zero(t, item.Snapshots[0].ROAS)
}
