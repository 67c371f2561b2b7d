package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"` // may be in the future
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	LocationID  *uint     `gorm:"index" json:"location_id"`
	Location    *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location,omitempty"`
	IsPublished bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

// IsVisibleAt reports whether the post is externally visible at the given
// moment. Category must be loaded for posts that have one.
func (p *Post) IsVisibleAt(now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.Category == nil || !p.Category.IsPublished) {
		return false
	}
	return true
}

// IsOwnedBy reports whether u authored the post. A nil user owns nothing.
func (p *Post) IsOwnedBy(u *User) bool {
	return u != nil && p.AuthorID == u.ID
}
