// Package middleware provides the session-cookie authentication guard.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/platform/flash"
)

// SessionCookie is the cookie that carries the opaque session token.
const SessionCookie = "blog_session"

// ContextUser is the gin context key holding the resolved *entity.User.
const ContextUser = "currentUser"

// IdentityResolver resolves a session token to the authenticated user.
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（middleware）が定義します。
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, sessionID string) (*entity.User, error)
}

// RequireLogin returns a Gin middleware that resolves the session cookie to a
// user and stores it in the context. Requests without a valid session are
// flashed the login notice and redirected to the login page.
func RequireLogin(sessions IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		user, err := sessions.CurrentIdentity(c.Request.Context(), token)
		if err != nil {
			slog.Info("session rejected", "error", err, "remote_addr", c.ClientIP())
			redirectToLogin(c)
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireLogin, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

func redirectToLogin(c *gin.Context) {
	flash.Add(c, flash.CategoryInfo, "Faça login para acessar esta página.")
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
