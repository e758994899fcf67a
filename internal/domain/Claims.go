package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin   = "admin"
	RoleService = "service"
	RoleViewer  = "viewer"
)

// Claims são as credenciais aceitas nos tokens de serviço. A gestão de
// usuários fica fora deste serviço; aqui só validamos o portador.
type Claims struct {
	Subject string `json:"sub_name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// CanTrigger indica se o portador pode disparar sincronizações e cron jobs
func (c *Claims) CanTrigger() bool {
	return c.Role == RoleAdmin || c.Role == RoleService
}
