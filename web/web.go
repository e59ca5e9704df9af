// Package web embeds the HTML templates and static assets.
package web

import (
	"bytes"
	"database/sql"
	"embed"
	"html/template"
	"io/fs"
	"time"
	"unicode"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates static
var files embed.FS

// mdRenderer escapes raw HTML in its input (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Templates parses every page and partial into one set. Pages are addressed by file name, e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(files, "templates/*.html", "templates/*/*.html")
}

// Static is the static asset tree, served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Favicon returns the embedded favicon.
func Favicon() ([]byte, error) {
	return fs.ReadFile(files, "static/favicon.svg")
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown":       renderMarkdown,
		"formatTime":     formatTime,
		"formatNullTime": formatNullTime,
		"statusClass":    statusClass,
		"capitalize":     capitalize,
		"add":            func(a, b int) int { return a + b },
	}
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return "Not reviewed yet"
	}
	return formatTime(t.Time)
}

func statusClass(status string) string {
	switch status {
	case "accepted":
		return "badge-success"
	case "rejected":
		return "badge-danger"
	case "reviewed":
		return "badge-info"
	default:
		return "badge-warning"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
