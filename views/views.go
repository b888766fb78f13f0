// Package views holds the HTML templates rendered by the api package
package views

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var files embed.FS

var funcs = template.FuncMap{
	"date": func(ms int64) string {
		return time.UnixMilli(ms).UTC().Format("2 Jan 2006")
	},
}

// Templates parses every embedded template. Pages are looked up by the name
// they define, e.g. "users/login"
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files,
		"templates/*.tmpl",
		"templates/users/*.tmpl",
		"templates/places/*.tmpl",
	)
}
