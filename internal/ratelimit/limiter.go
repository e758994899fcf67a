package ratelimit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/admetrica/adsync-api/infrastructure/repository"
	"github.com/admetrica/adsync-api/internal/domain"
)

// Limiter é o portão de chamadas remotas por conta e endpoint. Janela fixa
// sobre linhas no banco, válida entre instâncias concorrentes do processo.
// A busca e a criação da janela não são atômicas entre si, então duas
// chamadas disputando a borda da janela podem ambas passar; o limite é
// consultivo e o erro de rate limit da própria plataforma é o backstop.
type Limiter interface {
	Allow(ctx context.Context, accountID, endpoint string) (bool, error)
	Cleanup(ctx context.Context) (int64, error)
}

type limiter struct {
	repo      repository.RateLimitRepository
	maxCalls  int
	window    time.Duration
	retention time.Duration
}

type Options struct {
	MaxCalls      int
	WindowMinutes int
}

func NewLimiter(repo repository.RateLimitRepository, opts Options) Limiter {
	if opts.MaxCalls <= 0 {
		opts.MaxCalls = 100
	}
	if opts.WindowMinutes <= 0 {
		opts.WindowMinutes = 1
	}

	return &limiter{
		repo:      repo,
		maxCalls:  opts.MaxCalls,
		window:    time.Duration(opts.WindowMinutes) * time.Minute,
		retention: 24 * time.Hour,
	}
}

// Allow consome uma chamada do orçamento da janela corrente. Janela ausente
// ou já fechada abre uma nova começando agora; janela aberta incrementa de
// forma atômica e nega quando o orçamento acabou
func (l *limiter) Allow(ctx context.Context, accountID, endpoint string) (bool, error) {
	now := time.Now().UTC()

	window, err := l.repo.LatestWindow(ctx, accountID, endpoint)
	if err != nil {
		return false, err
	}

	if window == nil || window.Closed(now) {
		return true, l.openWindow(ctx, accountID, endpoint, now)
	}

	allowed, err := l.repo.Increment(ctx, window.ID)
	if err != nil {
		return false, err
	}

	if !allowed {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"endpoint":   endpoint,
			"max_calls":  window.MaxCalls,
			"window_end": window.WindowEnd,
		}).Warn("Orçamento de chamadas esgotado para a janela corrente")
	}

	return allowed, nil
}

func (l *limiter) openWindow(ctx context.Context, accountID, endpoint string, now time.Time) error {
	return l.repo.Create(ctx, &domain.RateLimitWindow{
		AccountID:   accountID,
		Endpoint:    endpoint,
		CallsCount:  1,
		MaxCalls:    l.maxCalls,
		WindowStart: now,
		WindowEnd:   now.Add(l.window),
	})
}

// Cleanup remove janelas encerradas há mais que o horizonte de retenção
func (l *limiter) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-l.retention)

	deleted, err := l.repo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		logrus.WithField("janelas_removidas", deleted).Info("Limpeza de janelas de rate limit concluída")
	}

	return deleted, nil
}
