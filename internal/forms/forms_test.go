package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, values url.Values, obj any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c.ShouldBind(obj)
}

func TestPostFormBindingReportsFieldNames(t *testing.T) {
	var form PostForm
	err := bind(t, url.Values{"title": {""}, "text": {""}, "pub_date": {""}}, &form)
	require.Error(t, err)

	errs := FromBindError(err)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "text")
	assert.Contains(t, errs, "pub_date")
}

func TestPostFormRejectsPastDate(t *testing.T) {
	now := time.Now()
	form := PostForm{
		Title:   "Trip",
		Text:    "Went somewhere",
		PubDate: now.Add(-24 * time.Hour).Format(DateTimeLayout),
	}

	_, errs := form.Clean(now, nil)
	assert.Equal(t, ErrPubDateInPast, errs["pub_date"])
}

func TestPostFormAcceptsCurrentMinuteAndFuture(t *testing.T) {
	now := time.Now()
	for _, ts := range []time.Time{now, now.Add(48 * time.Hour)} {
		form := PostForm{Title: "Trip", Text: "text", PubDate: ts.Format(DateTimeLayout), CategoryID: "3"}
		data, errs := form.Clean(now, nil)
		require.False(t, errs.Any(), errs)
		require.NotNil(t, data.CategoryID)
		assert.Equal(t, uint(3), *data.CategoryID)
		assert.Nil(t, data.LocationID)
	}
}

func TestPostFormEditKeepsUnchangedPastDate(t *testing.T) {
	now := time.Now()
	stored := now.Add(-72 * time.Hour)
	form := PostForm{Title: "Old", Text: "text", PubDate: stored.Format(DateTimeLayout)}

	_, errs := form.Clean(now, &stored)
	assert.False(t, errs.Any(), errs)

	moved := stored.Add(-time.Hour)
	form.PubDate = moved.Format(DateTimeLayout)
	_, errs = form.Clean(now, &stored)
	assert.Equal(t, ErrPubDateInPast, errs["pub_date"])
}

func TestPostFormInvalidValues(t *testing.T) {
	form := PostForm{Title: "  ", Text: "x", PubDate: "tomorrow", CategoryID: "abc", LocationID: "-1"}
	_, errs := form.Clean(time.Now(), nil)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "pub_date")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "location")
}

func TestPostDataApplyToKeepsOwnership(t *testing.T) {
	cat := uint(5)
	post := models.Post{AuthorID: 9, IsPublished: false, Category: &models.Category{ID: 1}}
	PostData{Title: "t", Text: "x", CategoryID: &cat}.ApplyTo(&post)

	assert.Equal(t, uint(9), post.AuthorID)
	assert.False(t, post.IsPublished)
	assert.Equal(t, &cat, post.CategoryID)
	assert.Nil(t, post.Category)
}

func TestPostFormFromRoundTrips(t *testing.T) {
	loc := uint(2)
	post := &models.Post{Title: "t", Text: "x", PubDate: time.Date(2030, 1, 2, 3, 4, 0, 0, time.Local), LocationID: &loc}
	form := PostFormFrom(post)
	assert.Equal(t, "2030-01-02T03:04", form.PubDate)
	assert.Equal(t, "2", form.LocationID)
	assert.Empty(t, form.CategoryID)
}

func TestProfileFormUsernameRule(t *testing.T) {
	var form ProfileForm
	err := bind(t, url.Values{"username": {"bad name!"}}, &form)
	errs := FromBindError(err)
	assert.Contains(t, errs["username"], "valid username")

	form = ProfileForm{}
	errs = FromBindError(bind(t, url.Values{"username": {"Edit"}}, &form))
	assert.Contains(t, errs["username"], "reserved name")

	form = ProfileForm{}
	require.NoError(t, bind(t, url.Values{"username": {"good.name-1"}, "email": {"a@b.co"}}, &form))
	assert.Equal(t, "good.name-1", form.Username)
}

func TestRegistrationFormPasswordsMustMatch(t *testing.T) {
	var form RegistrationForm
	err := bind(t, url.Values{
		"username":  {"newbie"},
		"password1": {"longenough"},
		"password2": {"different1"},
		"captcha":   {"4"},
	}, &form)
	errs := FromBindError(err)
	assert.Contains(t, errs, "password2")
}

func TestCommentFormClean(t *testing.T) {
	text, errs := CommentForm{Text: "  hi  "}.Clean()
	assert.False(t, errs.Any())
	assert.Equal(t, "hi", text)

	_, errs = CommentForm{Text: "   "}.Clean()
	assert.Contains(t, errs, "text")
}

func TestFromBindErrorNonValidation(t *testing.T) {
	errs := FromBindError(assert.AnError)
	assert.Contains(t, errs, NonFieldErrors)
	assert.Empty(t, FromBindError(nil))
}
