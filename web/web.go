// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates static
var files embed.FS

// Static returns the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Views lists every page template; the key is the name handlers render.
var Views = []string{
	"blog/index.html",
	"blog/detail.html",
	"blog/create.html",
	"blog/comment.html",
	"blog/category.html",
	"blog/profile.html",
	"blog/user.html",
	"pages/about.html",
	"pages/rules.html",
	"pages/404.html",
	"pages/500.html",
	"registration/login.html",
	"registration/registration_form.html",
}

// FuncMap is shared by all templates.
var FuncMap = template.FuncMap{
	"dict": func(values ...any) (map[string]any, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"date": func(t time.Time) string {
		return t.In(time.Local).Format("2 January 2006, 15:04")
	},
	// sameID compares a row id with a submitted form value.
	"sameID": func(id uint, value string) bool {
		return strconv.FormatUint(uint64(id), 10) == value
	},
}

// LoadTemplates builds one template set per view: the layout, includes and
// components plus the view itself.
func LoadTemplates() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	shared := []string{
		"templates/layouts/*.html",
		"templates/includes/*.html",
		"templates/components/*.html",
	}

	for _, view := range Views {
		patterns := append(append([]string{}, shared...), path.Join("templates/views", view))
		tmpl, err := template.New("base.html").Funcs(FuncMap).ParseFS(files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}
