package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/transport/middleware"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/platform/flash"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc     func(ctx context.Context, name, email, password string) (*entity.User, error)
	AuthenticateFunc func(ctx context.Context, email, password string) (*entity.User, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &entity.User{ID: 1, Name: name, Email: email}, nil
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, usecase.ErrInvalidCredentials
}

// mockSessionUsecase is a mock implementation of the SessionUsecase interface.
type mockSessionUsecase struct {
	LogInFunc  func(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*entity.Session, error)
	LogOutFunc func(ctx context.Context, sessionID string) error
}

func (m *mockSessionUsecase) LogIn(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*entity.Session, error) {
	if m.LogInFunc != nil {
		return m.LogInFunc(ctx, user, userAgent, ipAddress)
	}
	return &entity.Session{
		ID:        "token-123",
		UserID:    user.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *mockSessionUsecase) LogOut(ctx context.Context, sessionID string) error {
	if m.LogOutFunc != nil {
		return m.LogOutFunc(ctx, sessionID)
	}
	return nil
}

// newTestRouter wires the handler into a minimal engine with stub templates.
func newTestRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(`
{{define "registrar.html"}}registrar{{range .flashes}}[{{.Category}}: {{.Message}}]{{end}}{{end}}
{{define "login.html"}}login{{range .flashes}}[{{.Category}}: {{.Message}}]{{end}}{{end}}
`)))
	r.GET("/registrar", h.ShowRegister)
	r.POST("/registrar", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// flashMessages decodes the queued flash cookie from a response.
func flashMessages(t *testing.T, w *httptest.ResponseRecorder) []flash.Flash {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == flash.CookieName && cookie.Value != "" {
			// gin.SetCookie stores the value URL-escaped; undo that before decoding.
			raw, err := url.QueryUnescape(cookie.Value)
			require.NoError(t, err)
			data, err := base64.URLEncoding.DecodeString(raw)
			require.NoError(t, err)
			var flashes []flash.Flash
			require.NoError(t, json.Unmarshal(data, &flashes))
			return flashes
		}
	}
	return nil
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success redirects to login with a success flash", func(t *testing.T) {
		r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, &mockSessionUsecase{}))

		w := postForm(r, "/registrar", url.Values{
			"nome":  {"Ana"},
			"email": {"ana@x.com"},
			"senha": {"s3nha1"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		flashes := flashMessages(t, w)
		require.Len(t, flashes, 1)
		assert.Equal(t, flash.CategorySuccess, flashes[0].Category)
	})

	t.Run("missing fields redirect back to the form", func(t *testing.T) {
		r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, &mockSessionUsecase{}))

		w := postForm(r, "/registrar", url.Values{"nome": {"Ana"}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/registrar", w.Header().Get("Location"))

		flashes := flashMessages(t, w)
		require.Len(t, flashes, 1)
		assert.Equal(t, flash.CategoryDanger, flashes[0].Category)
	})

	t.Run("duplicate email gets its own message", func(t *testing.T) {
		auth := &mockAuthUsecase{
			RegisterFunc: func(ctx context.Context, name, email, password string) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
		}
		r := newTestRouter(NewAuthHandler(auth, &mockSessionUsecase{}))

		w := postForm(r, "/registrar", url.Values{
			"nome":  {"Ana"},
			"email": {"ana@x.com"},
			"senha": {"s3nha1"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/registrar", w.Header().Get("Location"))

		flashes := flashMessages(t, w)
		require.Len(t, flashes, 1)
		assert.Contains(t, flashes[0].Message, "já cadastrado")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	ana := &entity.User{ID: 1, Name: "Ana", Email: "ana@x.com"}

	t.Run("success sets the session cookie and redirects home", func(t *testing.T) {
		auth := &mockAuthUsecase{
			AuthenticateFunc: func(ctx context.Context, email, password string) (*entity.User, error) {
				return ana, nil
			},
		}
		r := newTestRouter(NewAuthHandler(auth, &mockSessionUsecase{}))

		w := postForm(r, "/login", url.Values{
			"email": {"ana@x.com"},
			"senha": {"s3nha1"},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/home", w.Header().Get("Location"))

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Equal(t, "token-123", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Greater(t, cookie.MaxAge, 0)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, &mockSessionUsecase{}))

		wUnknown := postForm(r, "/login", url.Values{"email": {"nobody@x.com"}, "senha": {"x"}})
		wWrongPw := postForm(r, "/login", url.Values{"email": {"ana@x.com"}, "senha": {"wrong"}})

		for _, w := range []*httptest.ResponseRecorder{wUnknown, wWrongPw} {
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			assert.Nil(t, sessionCookie(w))
		}

		assert.Equal(t, flashMessages(t, wUnknown), flashMessages(t, wWrongPw))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the session and clears the cookie", func(t *testing.T) {
		var revoked string
		sessions := &mockSessionUsecase{
			LogOutFunc: func(ctx context.Context, sessionID string) error {
				revoked = sessionID
				return nil
			},
		}
		r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, sessions))

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "token-123"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/home", w.Header().Get("Location"))
		assert.Equal(t, "token-123", revoked)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	})

	t.Run("logout without a session still redirects home", func(t *testing.T) {
		r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, &mockSessionUsecase{}))

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/home", w.Header().Get("Location"))
	})
}

func TestAuthHandler_ShowForms(t *testing.T) {
	r := newTestRouter(NewAuthHandler(&mockAuthUsecase{}, &mockSessionUsecase{}))

	t.Run("register form renders queued flashes", func(t *testing.T) {
		// Queue a flash the way a prior redirect would have
		wPrev := postForm(r, "/registrar", url.Values{})
		queued := wPrev.Result().Cookies()

		req := httptest.NewRequest(http.MethodGet, "/registrar", nil)
		for _, cookie := range queued {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "danger")
	})

	t.Run("login form renders without flashes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "login")
	})
}
