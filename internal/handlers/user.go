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
)

type UserHandler struct {
	perPage int
}

func NewUserHandler(perPage int) *UserHandler {
	return &UserHandler{perPage: perPage}
}

// Profile - 用户主页 /profile/:username/
// The owner sees every own post, drafts and scheduled ones included.
func (h *UserHandler) Profile(c *gin.Context) {
	var profile models.User
	err := db.DB.Where("username = ?", c.Param("username")).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	if err != nil {
		fail(c, "load profile", err)
		return
	}

	viewer := middleware.CurrentUser(c)
	isOwner := viewer != nil && viewer.ID == profile.ID

	filter := services.PostFilter{
		Author:           profile.Username,
		Published:        !isOwner,
		WithCommentCount: true,
	}
	posts, page, err := services.ListPosts(db.DB, filter, time.Now(), c.Query("page"), h.perPage)
	if err != nil {
		fail(c, "list profile posts", err)
		return
	}

	Render(c, http.StatusOK, "blog/profile.html", gin.H{
		"Title":     profile.Username,
		"Profile":   &profile,
		"IsOwner":   isOwner,
		"DaysSince": utils.GetDaysSinceJoined(profile.CreatedAt),
		"Posts":     posts,
		"Page":      page,
	})
}

// ShowEditProfile - 显示设置页面
func (h *UserHandler) ShowEditProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	renderProfileForm(c, http.StatusOK, forms.ProfileFormFrom(user), forms.Errors{})
}

// UpdateProfile edits the logged-in user only; there is no way to name
// another account.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form forms.ProfileForm
	errs := forms.FromBindError(c.ShouldBind(&form))

	if _, bad := errs["username"]; !bad && form.Username != user.Username {
		var taken int64
		if err := db.DB.Model(&models.User{}).
			Where("username = ? AND id <> ?", form.Username, user.ID).
			Count(&taken).Error; err != nil {
			fail(c, "check username", err)
			return
		}
		if taken > 0 {
			errs.Add("username", "A user with that username already exists.")
		}
	}

	if errs.Any() {
		renderProfileForm(c, http.StatusBadRequest, form, errs)
		return
	}

	form.ApplyTo(user)
	err := db.DB.Model(user).
		Select("username", "first_name", "last_name", "email").
		Updates(user).Error
	if err != nil {
		fail(c, "update profile", err)
		return
	}

	c.Redirect(http.StatusFound, profileURL(user.Username))
}

func renderProfileForm(c *gin.Context, code int, form forms.ProfileForm, errs forms.Errors) {
	Render(c, code, "blog/user.html", gin.H{
		"Title":  "Edit profile",
		"Form":   form,
		"Errors": errs,
	})
}
