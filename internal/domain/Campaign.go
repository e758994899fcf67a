package domain

import (
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusRemoved  CampaignStatus = "removed"
	CampaignStatusArchived CampaignStatus = "archived"
)

// Campaign representa uma campanha normalizada, independente da plataforma de origem.
// A identidade natural é (platform, external_id, account_id); campanhas removidas na
// origem nunca são apagadas, apenas marcadas com status "removed".
type Campaign struct {
	ID         string         `json:"id"`
	AccountID  string         `json:"account_id"`
	Platform   Platform       `json:"platform"`
	ExternalID string         `json:"external_id"`
	Name       string         `json:"name"`
	Status     CampaignStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ValidStatus verifica se o status informado pertence ao ciclo de vida conhecido
func ValidStatus(s CampaignStatus) bool {
	switch s {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusRemoved, CampaignStatusArchived:
		return true
	}
	return false
}
