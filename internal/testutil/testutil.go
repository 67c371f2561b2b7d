// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/utils"

	"gorm.io/gorm"
)

const Password = "s3cret-pass"

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	conn, err := db.Connect("sqlite://:memory:", false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

// UseDB installs conn as the package-global handle for the test's duration.
func UseDB(t testing.TB, conn *gorm.DB) {
	t.Helper()
	prev := db.DB
	db.DB = conn
	t.Cleanup(func() { db.DB = prev })
}

func CreateUser(t testing.TB, conn *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: username, Email: username + "@example.com", Password: hash}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func CreateCategory(t testing.TB, conn *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := models.Category{Title: slug, Slug: slug, IsPublished: published}
	if err := conn.Create(&category).Error; err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return &category
}

func CreateLocation(t testing.TB, conn *gorm.DB, name string) *models.Location {
	t.Helper()
	location := models.Location{Name: name, IsPublished: true}
	if err := conn.Create(&location).Error; err != nil {
		t.Fatalf("create location %s: %v", name, err)
	}
	return &location
}

// PostOption tweaks a fixture post before it is stored.
type PostOption func(*models.Post)

func Unpublished() PostOption {
	return func(p *models.Post) { p.IsPublished = false }
}

func PubDate(ts time.Time) PostOption {
	return func(p *models.Post) { p.PubDate = ts }
}

func InCategory(c *models.Category) PostOption {
	return func(p *models.Post) { p.CategoryID = &c.ID }
}

// CreatePost stores a published post dated one hour ago unless opts say otherwise.
func CreatePost(t testing.TB, conn *gorm.DB, author *models.User, title string, opts ...PostOption) *models.Post {
	t.Helper()
	post := models.Post{
		Title:       title,
		Text:        fmt.Sprintf("Text of %s", title),
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	for _, opt := range opts {
		opt(&post)
	}
	if err := conn.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return &post
}

func CreateComment(t testing.TB, conn *gorm.DB, post *models.Post, author *models.User, text string) *models.Comment {
	t.Helper()
	comment := models.Comment{Text: text, PostID: post.ID, AuthorID: author.ID}
	if err := conn.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}
