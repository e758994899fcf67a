package domain

import (
	"time"
)

// CacheEntry representa uma entrada do cache lateral persistido no banco.
// O cache nunca é dono do dado canônico: expirar ou perder uma entrada
// apenas força a releitura do armazenamento principal.
type CacheEntry struct {
	Key            string    `json:"key"`
	Payload        []byte    `json:"payload"`
	ExpiresAt      time.Time `json:"expires_at"`
	HitCount       int64     `json:"hit_count"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	ResourceType   *string   `json:"resource_type,omitempty"`
	ResourceID     *string   `json:"resource_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired indica se a entrada já passou do prazo de validade
func (e *CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt.Before(now)
}
