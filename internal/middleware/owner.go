package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ownedPostKey    = "owned_post"
	ownedCommentKey = "owned_comment"
)

// NotFoundHandler and ErrorHandler render the error pages. The handlers
// package installs them so middleware does not depend on templates.
var (
	NotFoundHandler gin.HandlerFunc = func(c *gin.Context) { c.AbortWithStatus(http.StatusNotFound) }
	ErrorHandler    gin.HandlerFunc = func(c *gin.Context) { c.AbortWithStatus(http.StatusInternalServerError) }
)

func PostURL(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

// PostOwnerRequired loads the post named by :post_id and lets the request
// through only for its author. Anyone else is sent back to the post page
// without a message. Must run after AuthRequired.
func PostOwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := utils.ParseID(c.Param("post_id"))
		if !ok {
			abortWith(c, NotFoundHandler)
			return
		}

		var post models.Post
		if err := db.DB.First(&post, postID).Error; err != nil {
			abortLookup(c, err)
			return
		}

		if !post.IsOwnedBy(CurrentUser(c)) {
			c.Redirect(http.StatusFound, PostURL(post.ID))
			c.Abort()
			return
		}

		c.Set(ownedPostKey, &post)
		c.Next()
	}
}

// CommentOwnerRequired is PostOwnerRequired for :comment_id. A comment that
// does not belong to :post_id counts as missing. Non-owners go to the parent
// post's page.
func CommentOwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, okPost := utils.ParseID(c.Param("post_id"))
		commentID, okComment := utils.ParseID(c.Param("comment_id"))
		if !okPost || !okComment {
			abortWith(c, NotFoundHandler)
			return
		}

		var comment models.Comment
		if err := db.DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error; err != nil {
			abortLookup(c, err)
			return
		}

		if !comment.IsOwnedBy(CurrentUser(c)) {
			c.Redirect(http.StatusFound, PostURL(comment.PostID))
			c.Abort()
			return
		}

		c.Set(ownedCommentKey, &comment)
		c.Next()
	}
}

// OwnedPost returns the post loaded by PostOwnerRequired.
func OwnedPost(c *gin.Context) *models.Post {
	return c.MustGet(ownedPostKey).(*models.Post)
}

// OwnedComment returns the comment loaded by CommentOwnerRequired.
func OwnedComment(c *gin.Context) *models.Comment {
	return c.MustGet(ownedCommentKey).(*models.Comment)
}

func abortLookup(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		abortWith(c, NotFoundHandler)
		return
	}
	log.Printf("ownership lookup failed for %s: %v", c.Request.URL.Path, err)
	abortWith(c, ErrorHandler)
}

func abortWith(c *gin.Context, h gin.HandlerFunc) {
	h(c)
	c.Abort()
}
