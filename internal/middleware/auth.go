package middleware

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"blogicum/internal/db"
	"blogicum/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// SessionUserKey is the session field holding the logged-in user's id.
const SessionUserKey = "user_id"

const LoginPath = "/auth/login/"

// AuthRequired ensures a user is logged in, otherwise redirects to the login
// page with the current path as next.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserKey)

		if userID != nil {
			var user models.User
			err := db.DB.First(&user, userID).Error
			switch {
			case err == nil:
				c.Set(CheckUserKey, &user)
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Stale session for a user that no longer exists.
				session.Delete(SessionUserKey)
				_ = session.Save()
			default:
				log.Printf("failed to load session user %v: %v", userID, err)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user or nil for anonymous visitors.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}
