package usecase

import (
	"context"
	"fmt"
	"strings"

	"blog_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Hasher はパスワードの一方向ハッシュ化を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type Hasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成します。
	Hash(plain string) (string, error)
	// Verify は平文パスワードがハッシュと一致する場合にtrueを返します。
	Verify(plain, hash string) bool
}

// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// Verifyが常に一度呼ばれることを保証します。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authUsecase は登録・認証のビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher Hasher
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher Hasher) *authUsecase {
	return &authUsecase{users: users, hasher: hasher}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスが既に使われている場合、ErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, PasswordHash: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate はメールアドレスとパスワードを検証し、一致したユーザーを返します。
// ユーザー未検出とパスワード不一致のどちらもErrInvalidCredentialsを返し、
// アカウント列挙を防ぎます。タイミング攻撃を防止するため、ユーザーが
// 存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))

	hash := dummyHash
	if err == nil {
		hash = user.PasswordHash
	}

	// ユーザーの有無に関わらず常に検証する
	ok := u.hasher.Verify(password, hash)

	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
