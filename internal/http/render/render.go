// Package render executes the embedded page templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ardoise/internal/balance"
	"github.com/MrJamesThe3rd/ardoise/internal/money"
)

const layout = "layout.html"

// Page is what every template receives as its root value.
type Page struct {
	App  string
	Nav  string
	Data any
}

type Renderer struct {
	app   string
	pages map[string]*template.Template
}

// New parses every templates/*.html file of fsys except the layout into its
// own set, each sharing the layout and the partials (files starting with "_").
func New(fsys fs.FS, app string, f *money.Formatter) (*Renderer, error) {
	funcs := template.FuncMap{
		"money":       f.Format,
		"number":      f.Number,
		"currency":    f.Currency,
		"date":        formatDate,
		"isodate":     func(t time.Time) string { return t.Format(time.DateOnly) },
		"status":      func(s balance.Status) string { return s.Label() },
		"statusClass": statusClass,
		"balanceOf":   balanceClass,
	}

	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	shared := []string{path.Join("templates", layout)}

	for _, n := range names {
		if strings.HasPrefix(path.Base(n), "_") {
			shared = append(shared, n)
		}
	}

	r := &Renderer{app: app, pages: make(map[string]*template.Template)}

	for _, n := range names {
		base := path.Base(n)
		if base == layout || strings.HasPrefix(base, "_") {
			continue
		}

		files := append([]string{n}, shared...)

		tmpl, err := template.New(base).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", base, err)
		}

		r.pages[strings.TrimSuffix(base, ".html")] = tmpl
	}

	return r, nil
}

// HTML renders page into a buffer first, so a template failure still
// produces a clean 500.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page, nav string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.ErrorContext(req.Context(), "unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layout, Page{App: r.app, Nav: nav, Data: data}); err != nil {
		slog.ErrorContext(req.Context(), "failed to render template", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(req.Context(), "failed to write response", "error", err)
	}
}

// Error renders the generic error page with msg.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, status int, msg string) {
	r.HTML(w, req, status, "error", "", struct {
		Status  int
		Message string
	}{Status: status, Message: msg})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("02/01/2006")
}

func statusClass(s balance.Status) string {
	if s == balance.StatusSettled {
		return "badge-settled"
	}

	return "badge-outstanding"
}

func balanceClass(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "amount-due"
	case d.IsNegative():
		return "amount-over"
	}

	return "amount-zero"
}
