package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticPages(t *testing.T) {
	_, engine := newServer(t)
	c := newClient(t, engine)

	w := c.get("/pages/about/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>About</h1>")

	w = c.get("/pages/rules/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Rules</h1>")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestUnknownRouteRendersNotFoundPage(t *testing.T) {
	_, engine := newServer(t)
	w := newClient(t, engine).get("/no/such/page/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestStaticAssetsAreServed(t *testing.T) {
	_, engine := newServer(t)
	w := newClient(t, engine).get("/static/css/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".container")
}
