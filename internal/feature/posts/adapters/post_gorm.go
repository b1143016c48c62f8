// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// postGorm はPostRepositoryインターフェースのGORM実装です。
type postGorm struct {
	db *gorm.DB
}

// postGormがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostGorm は指定されたgorm.DB接続でpostGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewPostGorm(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// Create は投稿をデータベースに追加します。
// 投稿者の存在チェックとINSERTを単一トランザクションで行い、
// 投稿者が存在しない場合はusecase.ErrAuthorNotFoundでロールバックします。
func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authentity.User{}).Where("id = ?", post.AuthorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrAuthorNotFound
		}
		return tx.Create(post).Error
	})
}

// postRow は投稿とユーザーのJOIN結果の1行です。
type postRow struct {
	ID         uint
	Title      string
	Body       string
	AuthorID   uint
	CreatedAt  time.Time
	AuthorName string
}

// ListRecentFirst は全投稿をID降順（新しい順）で返します。
// 投稿者名は明示的なJOINで取得します。ORMの遅延ロードには依存しません。
func (r *postGorm) ListRecentFirst(ctx context.Context) ([]entity.PostWithAuthor, error) {
	var rows []postRow
	err := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Select("posts.id, posts.title, posts.body, posts.author_id, posts.created_at, users.name AS author_name").
		Joins("JOIN users ON users.id = posts.author_id").
		Order("posts.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	posts := make([]entity.PostWithAuthor, len(rows))
	for i, row := range rows {
		posts[i] = entity.PostWithAuthor{
			Post: entity.Post{
				ID:        row.ID,
				Title:     row.Title,
				Body:      row.Body,
				AuthorID:  row.AuthorID,
				CreatedAt: row.CreatedAt,
			},
			AuthorName: row.AuthorName,
		}
	}
	return posts, nil
}
