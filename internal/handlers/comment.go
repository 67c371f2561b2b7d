package handlers

import (
	"errors"
	"net/http"
	"time"

	"blogicum/internal/db"
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create adds a comment to the post named by :post_id. The post only has to
// exist; a missing row is a 404. An empty comment re-renders the post page
// with the error and stores nothing.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}

	now := time.Now()
	post, err := services.FindPost(db.DB, postID, services.PostFilter{}, now)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		fail(c, "load post for comment", err)
		return
	}

	var form forms.CommentForm
	errs := forms.FromBindError(c.ShouldBind(&form))
	text, cleanErrs := form.Clean()
	errs.Merge(cleanErrs)
	if errs.Any() {
		// The detail page is only shown to those who may see the post.
		if !post.IsOwnedBy(user) && !post.IsVisibleAt(now) {
			NotFound(c)
			return
		}
		renderDetail(c, http.StatusBadRequest, post, form, errs)
		return
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := db.DB.Omit(clause.Associations).Create(&comment).Error; err != nil {
		fail(c, "create comment", err)
		return
	}

	c.Redirect(http.StatusFound, middleware.PostURL(post.ID))
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	comment := middleware.OwnedComment(c)
	renderCommentForm(c, http.StatusOK, gin.H{
		"Mode":    "edit",
		"PostID":  comment.PostID,
		"Comment": comment,
		"Form":    forms.CommentForm{Text: comment.Text},
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	comment := middleware.OwnedComment(c)

	var form forms.CommentForm
	errs := forms.FromBindError(c.ShouldBind(&form))
	text, cleanErrs := form.Clean()
	errs.Merge(cleanErrs)
	if errs.Any() {
		renderCommentForm(c, http.StatusBadRequest, gin.H{
			"Mode":    "edit",
			"PostID":  comment.PostID,
			"Comment": comment,
			"Form":    form,
			"Errors":  errs,
		})
		return
	}

	if err := db.DB.Model(comment).Update("text", text).Error; err != nil {
		fail(c, "update comment", err)
		return
	}

	c.Redirect(http.StatusFound, middleware.PostURL(comment.PostID))
}

func (h *CommentHandler) ShowDelete(c *gin.Context) {
	comment := middleware.OwnedComment(c)
	renderCommentForm(c, http.StatusOK, gin.H{
		"Mode":    "delete",
		"PostID":  comment.PostID,
		"Comment": comment,
	})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	comment := middleware.OwnedComment(c)

	if err := db.DB.Delete(&models.Comment{}, comment.ID).Error; err != nil {
		fail(c, "delete comment", err)
		return
	}

	c.Redirect(http.StatusFound, middleware.PostURL(comment.PostID))
}

func renderCommentForm(c *gin.Context, code int, data gin.H) {
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}
	data["Title"] = "Edit comment"
	if data["Mode"] == "delete" {
		data["Title"] = "Delete comment"
	}
	Render(c, code, "blog/comment.html", data)
}
