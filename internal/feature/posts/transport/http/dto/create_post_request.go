// Package dto defines data transfer objects for the posts feature's HTTP transport layer.
package dto

// CreatePostReq represents the form body for the /criar_post endpoint.
// Field names match the HTML form (titulo/conteudo).
type CreatePostReq struct {
	Titulo   string `form:"titulo" binding:"required"`
	Conteudo string `form:"conteudo" binding:"required"`
}
