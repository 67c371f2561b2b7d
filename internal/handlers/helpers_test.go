package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogicum/internal/config"
	"blogicum/internal/router"
	"blogicum/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// client is a cookie-keeping browser for one engine.
type client struct {
	t       *testing.T
	engine  http.Handler
	cookies map[string]*http.Cookie
}

func newServer(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()
	conn := testutil.NewDB(t)
	testutil.UseDB(t, conn)

	cfg := &config.Config{
		SessionSecret: "test-secret",
		PostsPerPage:  config.DefaultPostsPerPage,
		CORSOrigin:    "*",
		FormRate:      1000,
		FormBurst:     1000,
	}
	engine, _, err := router.New(cfg)
	require.NoError(t, err)
	return conn, engine
}

func newClient(t *testing.T, engine http.Handler) *client {
	return &client{t: t, engine: engine, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// login signs in through the real login form.
func (c *client) login(username string) {
	c.t.Helper()
	w := c.post("/auth/login/", url.Values{
		"username": {username},
		"password": {testutil.Password},
	})
	require.Equal(c.t, http.StatusFound, w.Code, w.Body.String())
}

func location(w *httptest.ResponseRecorder) string {
	return w.Header().Get("Location")
}
