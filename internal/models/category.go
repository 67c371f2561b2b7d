package models

import (
	"time"
)

// Category groups posts. Categories are never hard-deleted, only unpublished.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsPublished bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

type Location struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
