// Package db opens the GORM connection used by every repository.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "blog_backend/internal/feature/auth/adapters"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	postentity "blog_backend/internal/feature/posts/domain/entity"
)

// OpenDB connects to the database selected by DB_DRIVER (sqlite, mysql or
// postgres; sqlite is the default).
// The connection is retried for up to 60 seconds so the server survives a
// database that is still starting. RUN_MIGRATIONS=true runs AutoMigrate.
func OpenDB() *gorm.DB {
	dial := dialector()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dial, &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Post, Session）
		if err := db.AutoMigrate(
			&authentity.User{},
			&postentity.Post{},
			&authadapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// dialector builds the GORM dialector from environment variables.
func dialector() gorm.Dialector {
	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		return gmysql.Open(mysqlDSN())
	case "postgres":
		return gpostgres.Open(postgresDSN())
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "blog.db"
		}
		// 外部キー制約を有効化してpost.author_idの整合性をDB側でも守る
		return gsqlite.Open(path + "?_foreign_keys=on")
	}
}

// mysqlDSN assembles the MySQL DSN, including the Cloud SQL unix-socket form
// when INSTANCE_CONNECTION_NAME is set.
func mysqlDSN() string {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, instance, name)
	}
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		user, pass, host, port, name)
}

// postgresDSN assembles the PostgreSQL DSN. DB_DSN overrides the parts.
func postgresDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
}
