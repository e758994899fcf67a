package platform

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/admetrica/adsync-api/internal/domain"
)

// RemoteError representa uma resposta de erro de uma plataforma de anúncios
type RemoteError struct {
	Platform   domain.Platform
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: erro remoto (status %d): %s", e.Platform, e.StatusCode, e.Message)
}

// ValidationError indica entrada inválida rejeitada por um transformer.
// Nunca é retentado: o mesmo item falharia de novo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validação: campo %s: %s", e.Field, e.Message)
}

// NewValidationError cria um erro de validação para um campo específico
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation indica se o erro é de validação de entrada
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsAuthError indica falha de autorização na plataforma remota. O orquestrador
// aborta os estágios restantes quando a encontra.
func IsAuthError(err error) bool {
	var rErr *RemoteError
	if errors.As(err, &rErr) {
		return rErr.StatusCode == http.StatusUnauthorized || rErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRetryable separa falhas transitórias (rede, 429, 5xx) das permanentes
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var rErr *RemoteError
	if errors.As(err, &rErr) {
		return rErr.StatusCode == http.StatusTooManyRequests || rErr.StatusCode >= 500
	}

	if IsValidation(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED)
}
