package forms

import (
	"strconv"
	"strings"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/utils"
)

// DateTimeLayout matches the value of an <input type="datetime-local">.
const DateTimeLayout = "2006-01-02T15:04"

const ErrPubDateInPast = "publication date cannot be earlier than today"

// PostForm holds the user-editable fields of a post. Author, publication
// flag and creation time are absent so they cannot be bound.
type PostForm struct {
	Title      string `form:"title" binding:"required,max=256"`
	Text       string `form:"text" binding:"required"`
	PubDate    string `form:"pub_date" binding:"required"`
	LocationID string `form:"location"`
	CategoryID string `form:"category"`
}

// PostData is a cleaned PostForm.
type PostData struct {
	Title      string
	Text       string
	PubDate    time.Time
	LocationID *uint
	CategoryID *uint
}

// NewPostForm returns an empty form with the publication date preset to now.
func NewPostForm(now time.Time) PostForm {
	return PostForm{PubDate: now.Format(DateTimeLayout)}
}

// PostFormFrom prefills a form from an existing post.
func PostFormFrom(p *models.Post) PostForm {
	form := PostForm{
		Title:   p.Title,
		Text:    p.Text,
		PubDate: p.PubDate.In(time.Local).Format(DateTimeLayout),
	}
	if p.LocationID != nil {
		form.LocationID = strconv.FormatUint(uint64(*p.LocationID), 10)
	}
	if p.CategoryID != nil {
		form.CategoryID = strconv.FormatUint(uint64(*p.CategoryID), 10)
	}
	return form
}

// Clean parses the form. The publication date may not lie before now
// (compared to the minute, the input's precision). When editing, previous
// is the stored date: leaving it untouched is always accepted.
func (f PostForm) Clean(now time.Time, previous *time.Time) (PostData, Errors) {
	errs := Errors{}
	data := PostData{
		Title: strings.TrimSpace(f.Title),
		Text:  f.Text,
	}

	if data.Title == "" {
		errs.Add("title", "This field is required.")
	}
	if strings.TrimSpace(data.Text) == "" {
		errs.Add("text", "This field is required.")
	}

	pubDate, err := time.ParseInLocation(DateTimeLayout, f.PubDate, time.Local)
	if err != nil {
		errs.Add("pub_date", "Enter a valid date/time.")
	} else {
		data.PubDate = pubDate
		unchanged := previous != nil && pubDate.Equal(previous.Truncate(time.Minute))
		if !unchanged && pubDate.Before(now.Truncate(time.Minute)) {
			errs.Add("pub_date", ErrPubDateInPast)
		}
	}

	var ok bool
	if data.LocationID, ok = utils.ParseOptionalID(f.LocationID); !ok {
		errs.Add("location", "Select a valid choice.")
	}
	if data.CategoryID, ok = utils.ParseOptionalID(f.CategoryID); !ok {
		errs.Add("category", "Select a valid choice.")
	}

	return data, errs
}

// ApplyTo copies the cleaned values onto p, leaving ownership and the
// publication flag alone.
func (d PostData) ApplyTo(p *models.Post) {
	p.Title = d.Title
	p.Text = d.Text
	p.PubDate = d.PubDate
	p.LocationID = d.LocationID
	p.CategoryID = d.CategoryID
	// Drop stale associations so the new foreign keys win on save.
	p.Location = nil
	p.Category = nil
}
