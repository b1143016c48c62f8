// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/transport/middleware"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/transport/http/dto"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/flash"
)

// PostsUsecase は投稿操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PostsUsecase interface {
	// CreatePost は認証済みユーザーを投稿者として新しい投稿を作成します。
	CreatePost(ctx context.Context, title, body string, authorID uint) (*entity.Post, error)
	// ListRecent は全投稿を新しい順で返します。
	ListRecent(ctx context.Context) ([]entity.PostWithAuthor, error)
}

// PostsHandler は投稿作成フォームとホームの一覧表示を処理します。
type PostsHandler struct {
	posts PostsUsecase
}

// NewPostsHandler はPostsHandlerの新しいインスタンスを生成します。
func NewPostsHandler(posts PostsUsecase) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// ShowCreate は投稿作成フォームを表示します。RequireLoginの背後に置きます。
func (h *PostsHandler) ShowCreate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "criar_post.html", gin.H{
		"flashes": flash.Pop(c),
		"user":    user,
	})
}

// Create は投稿作成フォームのPOSTを処理します。
// 投稿者は常に現在のセッションのユーザーです（フォームからは受け取りません）。
// 失敗はフラッシュを積んで/criar_postへリダイレクトします。
func (h *PostsHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireLoginを通っていないリクエストはログインへ戻す
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var req dto.CreatePostReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("create post validation failed", "error", err, "user_id", user.ID)
		flash.Add(c, flash.CategoryDanger, "Preencha título e conteúdo.")
		c.Redirect(http.StatusFound, "/criar_post")
		return
	}

	if _, err := h.posts.CreatePost(c.Request.Context(), req.Titulo, req.Conteudo, user.ID); err != nil {
		if errors.Is(err, usecase.ErrEmptyPost) {
			flash.Add(c, flash.CategoryDanger, "Preencha título e conteúdo.")
		} else {
			slog.Error("create post failed", "error", err, "user_id", user.ID)
			flash.Add(c, flash.CategoryDanger, "Erro ao criar o post. Tente novamente.")
		}
		c.Redirect(http.StatusFound, "/criar_post")
		return
	}

	slog.Info("post created", "user_id", user.ID)
	flash.Add(c, flash.CategorySuccess, "Post criado com sucesso!")
	c.Redirect(http.StatusFound, "/home")
}

// Home は全投稿を新しい順で一覧表示します。/と/homeの両方から呼ばれます。
func (h *PostsHandler) Home(c *gin.Context) {
	posts, err := h.posts.ListRecent(c.Request.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		c.HTML(http.StatusInternalServerError, "home.html", gin.H{
			"flashes": []flash.Flash{{Category: flash.CategoryDanger, Message: "Erro ao carregar os posts."}},
		})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"flashes": flash.Pop(c),
		"posts":   posts,
	})
}
