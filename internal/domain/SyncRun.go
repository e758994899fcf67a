package domain

import (
	"time"
)

type SyncRunType string

const (
	SyncRunTypeFull        SyncRunType = "full"
	SyncRunTypeIncremental SyncRunType = "incremental"
	SyncRunTypeMetricsOnly SyncRunType = "metrics_only"
)

type SyncRunStatus string

const (
	SyncRunStatusPending        SyncRunStatus = "pending"
	SyncRunStatusInProgress     SyncRunStatus = "in_progress"
	SyncRunStatusSuccess        SyncRunStatus = "success"
	SyncRunStatusPartialSuccess SyncRunStatus = "partial_success"
	SyncRunStatusFailed         SyncRunStatus = "failed"
)

// SyncRun registra uma execução de sincronização para uma conta. O registro é
// criado como pending, avança para in_progress e é finalizado exatamente uma
// vez em um status terminal.
type SyncRun struct {
	ID           string        `json:"id"`
	AccountID    string        `json:"account_id"`
	RunType      SyncRunType   `json:"run_type"`
	Status       SyncRunStatus `json:"status"`
	Processed    int           `json:"processed"`
	Created      int           `json:"created"`
	Updated      int           `json:"updated"`
	Failed       int           `json:"failed"`
	ErrorMessage *string       `json:"error_message,omitempty"`
	ErrorDetails *string       `json:"error_details,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   *time.Time    `json:"finished_at,omitempty"`
}

// Terminal indica se o run já atingiu um status final
func (r *SyncRun) Terminal() bool {
	switch r.Status {
	case SyncRunStatusSuccess, SyncRunStatusPartialSuccess, SyncRunStatusFailed:
		return true
	}
	return false
}

// Duration retorna a duração da execução, se finalizada
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SyncOptions restringe o escopo de uma execução de sincronização
type SyncOptions struct {
	RunType      SyncRunType   `json:"run_type"`
	EntityLevels []EntityLevel `json:"entity_levels,omitempty"`
	LookbackDays int           `json:"lookback_days,omitempty"`
}

// SyncRunResponse é o retorno da camada HTTP ao disparar uma sincronização
type SyncRunResponse struct {
	RunID   string        `json:"run_id"`
	Status  SyncRunStatus `json:"status"`
	Message string        `json:"message,omitempty"`
}
