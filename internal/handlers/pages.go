package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", gin.H{"Title": "About"})
}

func Rules(c *gin.Context) {
	Render(c, http.StatusOK, "pages/rules.html", gin.H{"Title": "Rules"})
}
