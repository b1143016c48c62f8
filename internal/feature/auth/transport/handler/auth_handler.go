// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/transport/middleware"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/flash"
)

// AuthUsecase は登録・認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定された名前・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Authenticate はメールアドレスとパスワードを検証し、一致したユーザーを返します。
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// SessionUsecase はセッションのライフサイクル操作を定義します。
type SessionUsecase interface {
	// LogIn は指定されたユーザーのセッションを作成します。
	LogIn(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*entity.Session, error)
	// LogOut は指定されたセッションを失効させます。
	LogOut(ctx context.Context, sessionID string) error
}

// AuthHandler は登録・ログイン・ログアウトのフォームフローを処理します。
// 失敗はすべてフラッシュ通知を積んで安全なページへリダイレクトします。
type AuthHandler struct {
	auth     AuthUsecase
	sessions SessionUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAuthHandler(auth AuthUsecase, sessions SessionUsecase) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// ShowRegister は登録フォームを表示します。
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "registrar.html", gin.H{"flashes": flash.Pop(c)})
}

// Register はユーザー登録フォームのPOSTを処理します。
// - フォームをRegisterReqにバインド（nome/email/senha）
// - バリデーション失敗時はフラッシュを積んで/registrarへリダイレクト
// - メール重複時は専用メッセージで/registrarへリダイレクト
// - 成功時は/loginへリダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		flash.Add(c, flash.CategoryDanger, "Preencha nome, e-mail e senha corretamente.")
		c.Redirect(http.StatusFound, "/registrar")
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), req.Nome, req.Email, req.Senha); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			flash.Add(c, flash.CategoryDanger, "E-mail já cadastrado. Faça login ou use outro e-mail.")
		} else {
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			flash.Add(c, flash.CategoryDanger, "Erro ao criar a conta. Tente novamente.")
		}
		c.Redirect(http.StatusFound, "/registrar")
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	flash.Add(c, flash.CategorySuccess, "Conta criada com sucesso! Faça login.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin はログインフォームを表示します。
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"flashes": flash.Pop(c)})
}

// Login はログインフォームのPOSTを処理します。
// 認証に成功するとセッションクッキーを設定して/homeへリダイレクトします。
// ユーザー未検出とパスワード不一致は同一メッセージで/loginへ戻します
// （アカウント列挙防止）。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		flash.Add(c, flash.CategoryDanger, "Falha no login. Verifique e-mail e senha.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		// 原因（メール未登録かパスワード誤り）は利用者には公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		flash.Add(c, flash.CategoryDanger, "Falha no login. Verifique e-mail e senha.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session, err := h.sessions.LogIn(c.Request.Context(), user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Error("session creation failed", "error", err, "remote_addr", c.ClientIP())
		flash.Add(c, flash.CategoryDanger, "Erro ao iniciar a sessão. Tente novamente.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.ID, maxAge, "/", "", false, true)

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	flash.Add(c, flash.CategorySuccess, "Login realizado com sucesso!")
	c.Redirect(http.StatusFound, "/home")
}

// Logout は現在のセッションを失効させ、クッキーを破棄して/homeへ戻します。
// セッションが無い状態でのログアウトもエラーにしません。
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.sessions.LogOut(c.Request.Context(), token); err != nil {
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	flash.Add(c, flash.CategoryInfo, "Você saiu da sua conta.")
	c.Redirect(http.StatusFound, "/home")
}
