package handlers

import (
	"errors"
	"net/http"
	"time"

	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	perPage int
}

func NewCategoryHandler(perPage int) *CategoryHandler {
	return &CategoryHandler{perPage: perPage}
}

// Posts lists the visible posts of a published category. Unpublished or
// unknown slugs are a 404.
func (h *CategoryHandler) Posts(c *gin.Context) {
	var category models.Category
	err := db.DB.Where("slug = ? AND is_published = ?", c.Param("category_slug"), true).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		fail(c, "load category", err)
		return
	}

	filter := services.PostFilter{
		CategoryID:       &category.ID,
		Published:        true,
		WithCommentCount: true,
	}
	posts, page, err := services.ListPosts(db.DB, filter, time.Now(), c.Query("page"), h.perPage)
	if err != nil {
		fail(c, "list category posts", err)
		return
	}

	Render(c, http.StatusOK, "blog/category.html", gin.H{
		"Title":    category.Title,
		"Category": category,
		"Posts":    posts,
		"Page":     page,
	})
}
