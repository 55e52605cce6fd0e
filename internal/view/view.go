// Package view renders the dashboard page.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"time"

	"github.com/envmonitor/envmonitor/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Title is the page heading.
const Title = "AI Environmental Monitor"

// TimeLayout is the local time format shown on the reading card.
const TimeLayout = "3:04:05 PM"

// PageData is the input to the dashboard template.
type PageData struct {
	Snapshot         dashboard.Snapshot
	ShowInsights     bool
	InteractiveChart bool
	ChartURL         string
	RefreshSeconds   int
	Version          string
}

// Renderer renders the dashboard page from embedded templates.
type Renderer struct {
	tmpl     *template.Template
	location *time.Location
}

// NewRenderer parses the embedded templates. Times are shown in loc, or in
// time.Local when loc is nil.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}

	r := &Renderer{location: loc}

	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"pct":       formatPercent,
		"localTime": r.localTime,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Render writes the full dashboard page. Output is buffered so a template
// error never leaves a partial page on w.
func (r *Renderer) Render(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "dashboard.html", pageView{PageData: data, Title: Title}); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the stylesheet and other static assets, rooted at "static".
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(err)
	}
	return sub
}

type pageView struct {
	PageData
	Title string
}

func (r *Renderer) localTime(t time.Time) string {
	return t.In(r.location).Format(TimeLayout)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
