package forms

import (
	"strings"

	"blogicum/internal/models"
)

type CommentForm struct {
	Text string `form:"text" binding:"required,max=2000"`
}

// Clean trims the comment and rejects whitespace-only text.
func (f CommentForm) Clean() (string, Errors) {
	errs := Errors{}
	text := strings.TrimSpace(f.Text)
	if text == "" {
		errs.Add("text", "This field is required.")
	}
	return text, errs
}

// ProfileForm edits the current user's own public fields.
type ProfileForm struct {
	Username  string `form:"username" binding:"required,max=150,username"`
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Email     string `form:"email" binding:"omitempty,email,max=254"`
}

func ProfileFormFrom(u *models.User) ProfileForm {
	return ProfileForm{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func (f ProfileForm) ApplyTo(u *models.User) {
	u.Username = f.Username
	u.FirstName = strings.TrimSpace(f.FirstName)
	u.LastName = strings.TrimSpace(f.LastName)
	u.Email = strings.TrimSpace(f.Email)
}

type RegistrationForm struct {
	Username        string `form:"username" binding:"required,max=150,username"`
	Email           string `form:"email" binding:"omitempty,email,max=254"`
	Password        string `form:"password1" binding:"required,min=8,max=128"`
	PasswordConfirm string `form:"password2" binding:"required,eqfield=Password"`
	Captcha         string `form:"captcha" binding:"required"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
