package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// ownerEngine fakes the login step by putting user into the context.
func ownerEngine(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})
	r.GET("/posts/:post_id/edit/", middleware.AuthRequired(), middleware.PostOwnerRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "post %d", middleware.OwnedPost(c).ID)
	})
	r.GET("/posts/:post_id/edit_comment/:comment_id/", middleware.AuthRequired(), middleware.CommentOwnerRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "comment %d", middleware.OwnedComment(c).ID)
	})
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPostOwnerRequired(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.UseDB(t, conn)
	alice := testutil.CreateUser(t, conn, "alice")
	bob := testutil.CreateUser(t, conn, "bob")
	post := testutil.CreatePost(t, conn, alice, "Guarded")
	path := fmt.Sprintf("/posts/%d/edit/", post.ID)

	w := get(ownerEngine(nil), path)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), middleware.LoginPath+"?next=")

	w = get(ownerEngine(bob), path)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.PostURL(post.ID), w.Header().Get("Location"))

	w = get(ownerEngine(alice), path)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("post %d", post.ID), w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(ownerEngine(alice), "/posts/999/edit/").Code)
	assert.Equal(t, http.StatusNotFound, get(ownerEngine(alice), "/posts/0/edit/").Code)
}

func TestCommentOwnerRequired(t *testing.T) {
	conn := testutil.NewDB(t)
	testutil.UseDB(t, conn)
	alice := testutil.CreateUser(t, conn, "alice")
	bob := testutil.CreateUser(t, conn, "bob")
	post := testutil.CreatePost(t, conn, alice, "Guarded")
	comment := testutil.CreateComment(t, conn, post, bob, "Mine")
	path := fmt.Sprintf("/posts/%d/edit_comment/%d/", post.ID, comment.ID)

	w := get(ownerEngine(alice), path)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.PostURL(post.ID), w.Header().Get("Location"))

	w = get(ownerEngine(bob), path)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("comment %d", comment.ID), w.Body.String())

	other := fmt.Sprintf("/posts/%d/edit_comment/%d/", post.ID+1, comment.ID)
	assert.Equal(t, http.StatusNotFound, get(ownerEngine(bob), other).Code)
}
