package domain

import (
	"time"
)

type Platform string

const (
	PlatformMeta      Platform = "meta"
	PlatformGoogleAds Platform = "googleads"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account representa uma conta de integração com uma plataforma de anúncios
type Account struct {
	ID                   string        `json:"id"`
	Platform             Platform      `json:"platform"`
	ExternalID           string        `json:"external_id"`
	Name                 string        `json:"name"`
	Nickname             *string       `json:"nickname"`
	SecretName           *string       `json:"secret_name"`
	Status               AccountStatus `json:"status"`
	RevenuePerConversion *float64      `json:"revenue_per_conversion"`
	LastSyncedAt         *time.Time    `json:"last_synced_at"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}
