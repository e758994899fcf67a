package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_RetentaAteSucesso(t *testing.T) {
	calls := 0
	fn := func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("falha transitória")
		}
		return "ok", nil
	}

	result, err := Do(context.Background(), fn, Options{
		MaxAttempts:       5,
		InitialDelay:      1 * time.Millisecond,
		MaxDelay:          10 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls, "deve invocar exatamente 3 vezes: duas falhas e um sucesso")
}

func TestDo_EsgotaTentativasEDevolveUltimoErro(t *testing.T) {
	calls := 0
	lastErr := errors.New("sempre falha")
	fn := func() (int, error) {
		calls++
		return 0, lastErr
	}

	_, err := Do(context.Background(), fn, Options{
		MaxAttempts:       3,
		InitialDelay:      1 * time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, calls)
}

func TestDo_ErroPermanenteNaoRetenta(t *testing.T) {
	calls := 0
	permErr := errors.New("credenciais inválidas")
	fn := func() (int, error) {
		calls++
		return 0, permErr
	}

	_, err := Do(context.Background(), fn, Options{
		MaxAttempts:       5,
		InitialDelay:      1 * time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
		Classify:          func(err error) bool { return false },
	})

	assert.ErrorIs(t, err, permErr)
	assert.Equal(t, 1, calls, "erro permanente deve subir sem retentativa")
}

func TestDo_ContextoCanceladoInterrompe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fn := func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("falha")
	}

	_, err := Do(ctx, fn, Options{
		MaxAttempts:       5,
		InitialDelay:      50 * time.Millisecond,
		MaxDelay:          100 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDelayForAttempt_BackoffNaoDecrescenteComTeto(t *testing.T) {
	opts := Options{
		MaxAttempts:       6,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          400 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}.normalize()

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{attempt: 2, expected: 100 * time.Millisecond},
		{attempt: 3, expected: 200 * time.Millisecond},
		{attempt: 4, expected: 400 * time.Millisecond},
		{attempt: 5, expected: 400 * time.Millisecond}, // teto do MaxDelay
		{attempt: 6, expected: 400 * time.Millisecond},
	}

	previous := time.Duration(0)
	for _, tt := range tests {
		delay := opts.DelayForAttempt(tt.attempt)
		assert.Equal(t, tt.expected, delay, "atraso da tentativa %d", tt.attempt)
		assert.GreaterOrEqual(t, delay, previous, "atraso não pode diminuir entre tentativas")
		previous = delay
	}
}
