package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"blog_backend/internal/feature/auth/domain/entity"
)

// defaultSessionTTL はセッションの既定の有効期間です。
const defaultSessionTTL = 7 * 24 * time.Hour

// sessionUsecase はログイン・ログアウト・現在認証中ユーザーの解決を実装します。
type sessionUsecase struct {
	sessions SessionRepository
	users    UserRepository
	ttl      time.Duration
}

// NewSessionUsecase はsessionUsecaseの新しいインスタンスを生成します。
// ttlが0以下の場合は既定値（7日間）を使用します。
func NewSessionUsecase(sessions SessionRepository, users UserRepository, ttl time.Duration) *sessionUsecase {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionUsecase{sessions: sessions, users: users, ttl: ttl}
}

// newToken はcrypto/randで32バイトのランダム値を生成し、64文字のhex文字列を返します。
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// LogIn は指定されたユーザーのセッションを作成し、永続化して返します。
// 返されたSession.IDがクッキーに格納される不透明トークンになります。
func (u *sessionUsecase) LogIn(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*entity.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// LogOut は指定されたセッションを失効させます。
// 既に存在しないセッションはエラーにしません（ログアウトは冪等）。
func (u *sessionUsecase) LogOut(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// CurrentIdentity はセッショントークンから現在認証中のユーザーを解決します。
// セッションが見つからない・失効済み・期限切れの場合はそれぞれの
// センチネルエラーを返します。
func (u *sessionUsecase) CurrentIdentity(ctx context.Context, sessionID string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return u.users.FindByID(ctx, session.UserID)
}
