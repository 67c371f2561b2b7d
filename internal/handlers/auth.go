package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"blogicum/internal/db"
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const captchaSessionKey = "captcha_answer"

type AuthHandler struct {
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		captchaService: services.NewCaptchaService(),
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "registration/login.html", gin.H{
		"Title":    "Log in",
		"Next":     c.Query("next"),
		"Username": "",
		"Errors":   forms.Errors{},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	errs := forms.FromBindError(c.ShouldBind(&form))
	next := c.PostForm("next")

	var user models.User
	if !errs.Any() {
		if err := db.DB.Where("username = ?", form.Username).First(&user).Error; err != nil ||
			!utils.CheckPasswordHash(form.Password, user.Password) {
			errs.Add(forms.NonFieldErrors, "Please enter a correct username and password.")
		}
	}

	if errs.Any() {
		Render(c, http.StatusUnauthorized, "registration/login.html", gin.H{
			"Title":    "Log in",
			"Next":     next,
			"Username": form.Username,
			"Errors":   errs,
		})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		fail(c, "save session", err)
		return
	}

	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.renderRegister(c, http.StatusOK, forms.RegistrationForm{}, forms.Errors{})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegistrationForm
	errs := forms.FromBindError(c.ShouldBind(&form))

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get(captchaSessionKey).(int)
	answer, err := strconv.Atoi(strings.TrimSpace(form.Captcha))
	if !ok || err != nil || answer != expectedAnswer {
		errs.Add("captcha", "Wrong answer, try again.")
	}

	if _, bad := errs["username"]; !bad {
		var taken int64
		if err := db.DB.Model(&models.User{}).
			Where("username = ?", form.Username).
			Count(&taken).Error; err != nil {
			fail(c, "check username", err)
			return
		}
		if taken > 0 {
			errs.Add("username", "A user with that username already exists.")
		}
	}

	if errs.Any() {
		h.renderRegister(c, http.StatusBadRequest, form, errs)
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		fail(c, "hash password", err)
		return
	}
	user := models.User{
		Username: form.Username,
		Email:    strings.TrimSpace(form.Email),
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		fail(c, "create user", err)
		return
	}

	session.Delete(captchaSessionKey)
	_ = session.Save()

	Render(c, http.StatusOK, "registration/login.html", gin.H{
		"Title":    "Log in",
		"Success":  "Registration complete. You can log in now.",
		"Next":     "",
		"Username": user.Username,
		"Errors":   forms.Errors{},
	})
}

// renderRegister shows the form with a fresh captcha question each time.
func (h *AuthHandler) renderRegister(c *gin.Context, code int, form forms.RegistrationForm, errs forms.Errors) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set(captchaSessionKey, answer)
	if err := session.Save(); err != nil {
		fail(c, "save session", err)
		return
	}

	form.Password, form.PasswordConfirm, form.Captcha = "", "", ""
	Render(c, code, "registration/registration_form.html", gin.H{
		"Title":   "Sign up",
		"Form":    form,
		"Errors":  errs,
		"Captcha": question,
	})
}
