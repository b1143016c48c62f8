// Package router assembles the Gin engine and the route table.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authmw "blog_backend/internal/feature/auth/transport/middleware"
	postshandler "blog_backend/internal/feature/posts/transport/handler"
	platformhandler "blog_backend/internal/platform/http/handler"
)

func NewRouter(authH *authhandler.AuthHandler, postsH *postshandler.PostsHandler,
	sessions authmw.IdentityResolver) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 投稿一覧（/と/homeは同一）
	r.GET("/", postsH.Home)
	r.GET("/home", postsH.Home)
	// 新規ユーザー登録
	r.GET("/registrar", authH.ShowRegister)
	r.POST("/registrar", authH.Register)
	// ログイン（セッションクッキー発行）
	r.GET("/login", authH.ShowLogin)
	r.POST("/login", authH.Login)
	// ログアウト
	r.GET("/logout", authH.Logout)

	// 認証必須のルート
	// RequireLogin ミドルウェアを適用
	// → 有効なセッションクッキーが必要になる
	auth := r.Group("/")
	auth.Use(authmw.RequireLogin(sessions))
	{
		auth.GET("/criar_post", postsH.ShowCreate)
		auth.POST("/criar_post", postsH.Create)
	}

	return r
}
