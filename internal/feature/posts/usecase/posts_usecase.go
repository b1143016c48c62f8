// Package usecase はpostsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"

	"blog_backend/internal/feature/posts/domain/entity"
)

var (
	// ErrEmptyPost is returned when title or body is blank.
	ErrEmptyPost = errors.New("title and body are required")

	// ErrAuthorNotFound is returned when the author reference does not
	// resolve to an existing user. This should be unreachable while the
	// login middleware guards post creation.
	ErrAuthorNotFound = errors.New("author not found")
)

// PostRepository は投稿エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー(adapters)ではなくコンシューマー(usecase)が定義します。
type PostRepository interface {
	// Create は新しい投稿をストレージに永続化します。
	// AuthorIDが既存ユーザーを参照していない場合、ErrAuthorNotFoundを返します。
	// 書き込みはトランザクション内で行われ、部分的な書き込みは残りません。
	Create(ctx context.Context, post *entity.Post) error

	// ListRecentFirst は全投稿を作成の新しい順（ID降順）で返します。
	// 投稿者の表示名は明示的なJOINで解決されます。
	ListRecentFirst(ctx context.Context) ([]entity.PostWithAuthor, error)
}

// postsUsecase は投稿の作成と一覧取得を実装します。
type postsUsecase struct {
	posts PostRepository
}

// NewPostsUsecase はpostsUsecaseの新しいインスタンスを生成します。
func NewPostsUsecase(posts PostRepository) *postsUsecase {
	return &postsUsecase{posts: posts}
}

// CreatePost は認証済みユーザーを投稿者として新しい投稿を作成します。
func (u *postsUsecase) CreatePost(ctx context.Context, title, body string, authorID uint) (*entity.Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrEmptyPost
	}

	post := &entity.Post{Title: title, Body: body, AuthorID: authorID}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListRecent は全投稿を新しい順で返します。ページネーションはありません。
func (u *postsUsecase) ListRecent(ctx context.Context) ([]entity.PostWithAuthor, error) {
	return u.posts.ListRecentFirst(ctx)
}
