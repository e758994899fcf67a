// Package retry executa chamadas remotas com retentativas e backoff exponencial
// limitado. Apenas falhas transitórias são retentadas; falhas permanentes
// (ex.: autorização) sobem imediatamente.
package retry

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Classifier decide se um erro é transitório e vale uma nova tentativa
type Classifier func(err error) bool

// Options parametriza o executor de retentativas
type Options struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Classify          Classifier
}

// DefaultOptions são os parâmetros usados nas chamadas às plataformas de anúncios
func DefaultOptions() Options {
	return Options{
		MaxAttempts:       3,
		InitialDelay:      1 * time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (o Options) normalize() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 1 * time.Second
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = o.InitialDelay
	}
	if o.BackoffMultiplier < 1 {
		o.BackoffMultiplier = 1
	}
	return o
}

// DelayForAttempt calcula o atraso antes da tentativa n (n >= 2):
// min(initialDelay * multiplier^(n-1), maxDelay)
func (o Options) DelayForAttempt(attempt int) time.Duration {
	delay := o.InitialDelay
	for i := 1; i < attempt-1; i++ {
		delay = time.Duration(float64(delay) * o.BackoffMultiplier)
		if delay >= o.MaxDelay {
			return o.MaxDelay
		}
	}
	if delay > o.MaxDelay {
		return o.MaxDelay
	}
	return delay
}

// Do executa fn até obter sucesso ou esgotar as tentativas, devolvendo o
// último erro. Erros não transitórios interrompem as retentativas na hora.
func Do[T any](ctx context.Context, fn func() (T, error), opts Options) (T, error) {
	var zero T
	opts = opts.normalize()

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := opts.DelayForAttempt(attempt)
			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay.String(),
			}).Debug("Aguardando antes da próxima tentativa")

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if opts.Classify != nil && !opts.Classify(err) {
			logrus.WithError(err).Debug("Erro permanente, sem retentativa")
			return zero, err
		}

		logrus.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": opts.MaxAttempts,
			"error":        err.Error(),
		}).Warn("Tentativa falhou")
	}

	return zero, lastErr
}
