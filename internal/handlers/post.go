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

type PostHandler struct {
	perPage int
}

func NewPostHandler(perPage int) *PostHandler {
	return &PostHandler{perPage: perPage}
}

// Index lists externally visible posts, newest first.
func (h *PostHandler) Index(c *gin.Context) {
	filter := services.PostFilter{Published: true, WithCommentCount: true}
	posts, page, err := services.ListPosts(db.DB, filter, time.Now(), c.Query("page"), h.perPage)
	if err != nil {
		fail(c, "list index posts", err)
		return
	}

	Render(c, http.StatusOK, "blog/index.html", gin.H{
		"Title": "Latest posts",
		"Posts": posts,
		"Page":  page,
	})
}

// Detail shows one post. Authors see their own posts in any state; everyone
// else only sees externally visible ones.
func (h *PostHandler) Detail(c *gin.Context) {
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
		fail(c, "load post", err)
		return
	}

	if !post.IsOwnedBy(middleware.CurrentUser(c)) && !post.IsVisibleAt(now) {
		NotFound(c)
		return
	}

	renderDetail(c, http.StatusOK, post, forms.CommentForm{}, forms.Errors{})
}

// renderDetail shows a post with its comments and the comment form.
func renderDetail(c *gin.Context, code int, post *models.Post, form forms.CommentForm, errs forms.Errors) {
	comments, err := services.PostComments(db.DB, post.ID)
	if err != nil {
		fail(c, "load comments", err)
		return
	}

	Render(c, code, "blog/detail.html", gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Text),
		"Comments":    comments,
		"Form":        form,
		"Errors":      errs,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, gin.H{
		"Mode": "create",
		"Form": forms.NewPostForm(time.Now()),
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form forms.PostForm
	data, errs, err := cleanPostForm(c, &form, nil)
	if err != nil {
		fail(c, "check post references", err)
		return
	}
	if errs.Any() {
		h.renderForm(c, http.StatusBadRequest, gin.H{
			"Mode":   "create",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	post := models.Post{
		AuthorID:    user.ID,
		IsPublished: true,
	}
	data.ApplyTo(&post)

	if err := db.DB.Omit(clause.Associations).Create(&post).Error; err != nil {
		fail(c, "create post", err)
		return
	}

	c.Redirect(http.StatusFound, profileURL(user.Username))
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post := middleware.OwnedPost(c)
	h.renderForm(c, http.StatusOK, gin.H{
		"Mode": "edit",
		"Post": post,
		"Form": forms.PostFormFrom(post),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	post := middleware.OwnedPost(c)
	previous := post.PubDate

	var form forms.PostForm
	data, errs, err := cleanPostForm(c, &form, &previous)
	if err != nil {
		fail(c, "check post references", err)
		return
	}
	if errs.Any() {
		h.renderForm(c, http.StatusBadRequest, gin.H{
			"Mode":   "edit",
			"Post":   post,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	data.ApplyTo(post)
	if err := db.DB.Omit(clause.Associations).Save(post).Error; err != nil {
		fail(c, "update post", err)
		return
	}

	c.Redirect(http.StatusFound, middleware.PostURL(post.ID))
}

// ShowDelete presents the post read-only for confirmation.
func (h *PostHandler) ShowDelete(c *gin.Context) {
	post := middleware.OwnedPost(c)
	h.renderForm(c, http.StatusOK, gin.H{
		"Mode": "delete",
		"Post": post,
		"Form": forms.PostFormFrom(post),
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	post := middleware.OwnedPost(c)

	if err := services.DeletePost(db.DB, post.ID); err != nil {
		fail(c, "delete post", err)
		return
	}

	c.Redirect(http.StatusFound, profileURL(middleware.CurrentUser(c).Username))
}

func (h *PostHandler) renderForm(c *gin.Context, code int, data gin.H) {
	var categories []models.Category
	var locations []models.Location
	if err := db.DB.Order("title ASC").Find(&categories).Error; err != nil {
		fail(c, "load categories", err)
		return
	}
	if err := db.DB.Order("name ASC").Find(&locations).Error; err != nil {
		fail(c, "load locations", err)
		return
	}

	data["Categories"] = categories
	data["Locations"] = locations
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}
	switch data["Mode"] {
	case "edit":
		data["Title"] = "Edit post"
	case "delete":
		data["Title"] = "Delete post"
	default:
		data["Title"] = "New post"
	}

	Render(c, code, "blog/create.html", data)
}

// cleanPostForm binds, validates and checks that referenced category and
// location rows exist.
func cleanPostForm(c *gin.Context, form *forms.PostForm, previous *time.Time) (forms.PostData, forms.Errors, error) {
	errs := forms.FromBindError(c.ShouldBind(form))
	data, cleanErrs := form.Clean(time.Now(), previous)
	errs.Merge(cleanErrs)

	if data.CategoryID != nil {
		found, err := exists(&models.Category{}, *data.CategoryID)
		if err != nil {
			return data, errs, err
		}
		if !found {
			errs.Add("category", "Select a valid choice.")
		}
	}
	if data.LocationID != nil {
		found, err := exists(&models.Location{}, *data.LocationID)
		if err != nil {
			return data, errs, err
		}
		if !found {
			errs.Add("location", "Select a valid choice.")
		}
	}
	return data, errs, nil
}

func exists(model any, id uint) (bool, error) {
	var count int64
	if err := db.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
