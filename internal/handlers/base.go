package handlers

import (
	"log"
	"net/http"
	"strings"

	"blogicum/internal/middleware"

	"github.com/gin-gonic/gin"
)

func init() {
	middleware.NotFoundHandler = NotFound
	middleware.ErrorHandler = ServerError
}

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// NotFound renders the generic 404 page. Used for every missing entity.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "pages/404.html", gin.H{"Title": "Page not found"})
}

// ServerError renders the generic 500 page.
func ServerError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "pages/500.html", gin.H{"Title": "Server error"})
}

// Recovery logs a panic and answers with the 500 page.
func Recovery(c *gin.Context, recovered any) {
	log.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	ServerError(c)
	c.Abort()
}

// fail logs an unexpected error and renders the 500 page.
func fail(c *gin.Context, what string, err error) {
	log.Printf("%s: %v", what, err)
	ServerError(c)
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
