// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the form body for the /registrar endpoint.
// Field names match the HTML form (nome/email/senha) and use Gin's
// binding tags for validation.
type RegisterReq struct {
	Nome  string `form:"nome" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Senha string `form:"senha" binding:"required"`
}
