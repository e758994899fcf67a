// Package loading persiste os pares normalizados (campanha, snapshots) de
// forma idempotente. O upsert por chave natural é o controle de concorrência:
// reprocessar o mesmo lote produz o mesmo estado final.
package loading

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/integrator/platform"
	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
)

// LoadResult é o desfecho da carga de um item
type LoadResult struct {
	CampaignID string
	Created    bool
	Snapshots  int
}

// BatchResult acumula o desfecho de um lote. Falha parcial nunca vira erro
// do lote inteiro.
type BatchResult struct {
	Total   int                  `json:"total"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
	Created int                  `json:"created"`
	Updated int                  `json:"updated"`
	Errors  []platform.ItemError `json:"errors,omitempty"`
}

type Loader interface {
	Load(ctx context.Context, item *platform.NormalizedItem) (*LoadResult, error)
	LoadBatch(ctx context.Context, items []*platform.NormalizedItem) *BatchResult
}

type Service struct {
	campaignRepository repository.CampaignRepository
	snapshotRepository repository.MetricSnapshotRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	snapshotRepo repository.MetricSnapshotRepository,
) *Service {
	return &Service{
		campaignRepository: campaignRepo,
		snapshotRepository: snapshotRepo,
	}
}

// Load grava a campanha e em seguida seus snapshots usando o id interno
// devolvido pelo mesmo upsert, nunca um id de uma chamada anterior
func (s *Service) Load(ctx context.Context, item *platform.NormalizedItem) (*LoadResult, error) {
	if item == nil || item.Campaign == nil {
		return nil, fmt.Errorf("item de carga sem campanha")
	}

	upserted, err := s.campaignRepository.Upsert(ctx, item.Campaign)
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar campanha %s: %w", item.Campaign.ExternalID, err)
	}

	result := &LoadResult{
		CampaignID: upserted.ID,
		Created:    upserted.Inserted,
	}

	for _, snapshot := range item.Snapshots {
		// o transformer preenche EntityID com o id externo; aqui ele é
		// trocado pelo id interno recém-garantido
		snapshot.EntityID = upserted.ID
		snapshot.BucketStart = domain.NormalizeBucket(snapshot.BucketStart, snapshot.Resolution)

		if err := s.snapshotRepository.Upsert(ctx, snapshot); err != nil {
			return result, fmt.Errorf("erro ao gravar snapshot %s/%s: %w",
				upserted.ID, snapshot.BucketStart.Format("2006-01-02T15"), err)
		}

		result.Snapshots++
	}

	return result, nil
}

// LoadBatch carrega cada item isoladamente: a falha de um item não impede
// nem desfaz os demais
func (s *Service) LoadBatch(ctx context.Context, items []*platform.NormalizedItem) *BatchResult {
	result := &BatchResult{Total: len(items)}

	for _, item := range items {
		loaded, err := s.Load(ctx, item)
		if err != nil {
			result.Failed++

			externalID := ""
			if item != nil && item.Campaign != nil {
				externalID = item.Campaign.ExternalID
			}

			result.Errors = append(result.Errors, platform.ItemError{
				ExternalID: externalID,
				Error:      err.Error(),
			})

			logrus.WithFields(logrus.Fields{
				"external_id": externalID,
				"error":       err.Error(),
			}).Error("Falha ao carregar item do lote")

			continue
		}

		result.Success++
		if loaded.Created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result
}
