package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownFormats(t *testing.T) {
	out := string(RenderMarkdown("**bold** and _em_"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>em</em>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hello <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
}

func TestRenderMarkdownEnhancesImages(t *testing.T) {
	out := string(RenderMarkdown("![cat](https://example.com/cat.png)"))
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `referrerpolicy="no-referrer"`)
	assert.False(t, strings.Contains(out, "<body"))
}

func TestEnhanceHTMLContentEmpty(t *testing.T) {
	assert.Equal(t, "", string(EnhanceHTMLContent("")))
}
