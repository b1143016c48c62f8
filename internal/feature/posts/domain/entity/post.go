// Package entity defines the domain entities for the posts feature.
package entity

import "time"

// Post represents a text post authored by a registered user.
// A post cannot exist without an author.
type Post struct {
	// ID is the unique identifier for the post.
	ID uint `gorm:"primaryKey"`

	// Title is the post title. It must not be empty.
	Title string `gorm:"size:200;not null"`

	// Body is the post content. It must not be empty.
	Body string `gorm:"type:text;not null"`

	// AuthorID references the user who created the post.
	// It is mandatory and must point at an existing user.
	AuthorID uint `gorm:"index;not null"`

	// CreatedAt is the timestamp when the post was created.
	CreatedAt time.Time
}

// PostWithAuthor is a post joined with its author's display name.
// The name is resolved with an explicit join at query time; the entity
// carries no ORM back-reference to the user.
type PostWithAuthor struct {
	Post
	AuthorName string
}
