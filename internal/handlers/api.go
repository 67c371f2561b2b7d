package handlers

import (
	"errors"
	"net/http"
	"time"

	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIHandler serves the read-only JSON feed. It never applies the owner
// bypass: only externally visible posts are exposed.
type APIHandler struct {
	perPage int
}

func NewAPIHandler(perPage int) *APIHandler {
	return &APIHandler{perPage: perPage}
}

type apiPost struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	PubDate      time.Time `json:"pub_date"`
	Author       string    `json:"author"`
	Category     string    `json:"category,omitempty"`
	Location     string    `json:"location,omitempty"`
	CommentCount int       `json:"comment_count"`
}

type apiPage struct {
	Number     int   `json:"number"`
	TotalPages int   `json:"total_pages"`
	Count      int64 `json:"count"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

func toAPIPost(p models.Post) apiPost {
	out := apiPost{
		ID:           p.ID,
		Title:        p.Title,
		Text:         p.Text,
		PubDate:      p.PubDate,
		Author:       p.Author.Username,
		CommentCount: p.CommentCount,
	}
	if p.Category != nil {
		out.Category = p.Category.Slug
	}
	if p.Location != nil {
		out.Location = p.Location.Name
	}
	return out
}

// ListPosts GET /api/posts/?page=
func (h *APIHandler) ListPosts(c *gin.Context) {
	filter := services.PostFilter{Published: true, WithCommentCount: true}
	posts, page, err := services.ListPosts(db.DB, filter, time.Now(), c.Query("page"), h.perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	results := make([]apiPost, 0, len(posts))
	for _, p := range posts {
		results = append(results, toAPIPost(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"page": apiPage{
			Number:     page.Number,
			TotalPages: page.TotalPages,
			Count:      page.Total,
			HasNext:    page.HasNext(),
			HasPrev:    page.HasPrevious(),
		},
		"results": results,
	})
}

// GetPost GET /api/posts/:post_id/
func (h *APIHandler) GetPost(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	filter := services.PostFilter{Published: true, WithCommentCount: true}
	post, err := services.FindPost(db.DB, id, filter, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	c.JSON(http.StatusOK, toAPIPost(*post))
}
