package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	postsadapters "blog_backend/internal/feature/posts/adapters"
	postshandler "blog_backend/internal/feature/posts/transport/handler"
	postsusecase "blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/cache"
	infradb "blog_backend/internal/platform/db"
	"blog_backend/internal/platform/password"
	infraredis "blog_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis（無ければキャッシュ無し・セッションはDBに切替）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	postRepo := postsadapters.NewPostGorm(db)

	// Redisキャッシュでラップ（一覧のみ）
	cachedPostRepo := cache.NewCachingPostRepository(rdb, 0, postRepo, "posts")

	// Usecase
	hasher := password.NewBcrypt(0)
	authUC := authusecase.NewAuthUsecase(userRepo, hasher)
	sessionUC := authusecase.NewSessionUsecase(sessionRepo, userRepo, 0)
	postsUC := postsusecase.NewPostsUsecase(cachedPostRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, sessionUC)
	postsH := postshandler.NewPostsHandler(postsUC)

	// ルータ生成
	r := router.NewRouter(authH, postsH, sessionUC)
	r.LoadHTMLGlob("web/templates/*.html")

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
