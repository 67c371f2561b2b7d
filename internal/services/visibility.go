package services

import (
	"fmt"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/utils"

	"gorm.io/gorm"
)

// PostFilter selects which posts a listing shows. Flags are independent.
type PostFilter struct {
	// Published keeps only externally visible posts: published, pub_date
	// reached and category (if any) published.
	Published bool
	// Author keeps only posts written by this username.
	Author string
	// CategoryID scopes the collection to one category.
	CategoryID *uint
	// WithCommentCount fills Post.CommentCount and orders newest first.
	WithCommentCount bool
}

// FilterPosts builds a post query for f. now must be taken per request.
func FilterPosts(tx *gorm.DB, f PostFilter, now time.Time) *gorm.DB {
	q := tx.Model(&models.Post{})

	if f.CategoryID != nil {
		q = q.Where("posts.category_id = ?", *f.CategoryID)
	}

	if f.Published {
		publishedCategories := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Category{}).
			Select("id").
			Where("is_published = ?", true)
		q = q.Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("(posts.category_id IS NULL OR posts.category_id IN (?))", publishedCategories)
	}

	if f.Author != "" {
		authors := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.User{}).
			Select("id").
			Where("username = ?", f.Author)
		q = q.Where("posts.author_id IN (?)", authors)
	}

	if f.WithCommentCount {
		q = q.Order("posts.pub_date DESC")
	}

	return q
}

// ListPosts returns the requested page of posts matching f, with author,
// category and location preloaded.
func ListPosts(tx *gorm.DB, f PostFilter, now time.Time, rawPage string, perPage int) ([]models.Post, utils.Page, error) {
	var total int64
	if err := FilterPosts(tx, f, now).Count(&total).Error; err != nil {
		return nil, utils.Page{}, fmt.Errorf("count posts: %w", err)
	}

	page := utils.NewPage(rawPage, total, perPage)

	var posts []models.Post
	err := FilterPosts(tx, f, now).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, page, fmt.Errorf("list posts: %w", err)
	}

	if f.WithCommentCount {
		if err := FillCommentCounts(tx, posts); err != nil {
			return nil, page, err
		}
	}

	return posts, page, nil
}

// FindPost loads one post matching f by id. Returns gorm.ErrRecordNotFound
// when no row qualifies.
func FindPost(tx *gorm.DB, id uint, f PostFilter, now time.Time) (*models.Post, error) {
	var post models.Post
	err := FilterPosts(tx, f, now).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	if f.WithCommentCount {
		posts := []models.Post{post}
		if err := FillCommentCounts(tx, posts); err != nil {
			return nil, err
		}
		post = posts[0]
	}
	return &post, nil
}

// FillCommentCounts 批量填充帖子的评论数量
func FillCommentCounts(tx *gorm.DB, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	err := tx.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}
