package domain

import (
	"time"
)

// RateLimitWindow registra o orçamento de chamadas de uma conta para um padrão
// de endpoint dentro de uma janela fixa. As janelas vivem no banco, e não em
// memória, para que o limite valha entre instâncias concorrentes do processo.
type RateLimitWindow struct {
	ID          int64     `json:"id"`
	AccountID   string    `json:"account_id"`
	Endpoint    string    `json:"endpoint"`
	CallsCount  int       `json:"calls_count"`
	MaxCalls    int       `json:"max_calls"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	CreatedAt   time.Time `json:"created_at"`
}

// Closed indica se a janela já terminou
func (w *RateLimitWindow) Closed(now time.Time) bool {
	return w.WindowEnd.Before(now)
}
