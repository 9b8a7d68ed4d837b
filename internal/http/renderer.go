package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TemplateRenderer renders HTML templates for page responses.
type TemplateRenderer struct {
	t       *template.Template
	fsys    fs.FS
	devMode bool
	logger  *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing layout.tmpl and pages/*.tmpl (required)
	DevMode    bool         // Re-parse templates on every render
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer parses the template set once. In dev mode the set is
// parsed again on each render so edits on disk show up without a restart.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	r := &TemplateRenderer{fsys: cfg.TemplateFS, devMode: cfg.DevMode, logger: cfg.Logger}
	t, err := r.parse()
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	r.t = t
	return r, nil
}

func (r *TemplateRenderer) parse() (*template.Template, error) {
	var t *template.Template
	t, err := template.New("root").Funcs(templateFuncs(&t)).ParseFS(r.fsys, "*.tmpl", "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func (r *TemplateRenderer) current() (*template.Template, error) {
	if !r.devMode {
		return r.t, nil
	}
	return r.parse()
}

// Render writes the full page (layout + page content) with status 200.
func (r *TemplateRenderer) Render(w http.ResponseWriter, data any) error {
	return r.RenderStatus(w, http.StatusOK, data)
}

// RenderStatus writes the full page with the given status code. Output is
// buffered so a failing template never leaves a half-written page.
func (r *TemplateRenderer) RenderStatus(w http.ResponseWriter, status int, data any) error {
	t, err := r.current()
	if err != nil {
		r.logTemplateError("layout", err)
		return err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logTemplateError("layout", err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		if r.logger != nil {
			r.logger.Error("failed to write rendered template", slog.Any("error", err))
		}
		return err
	}
	return nil
}

// logTemplateError logs a template execution error with context.
func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}

// ContentTemplateFor names the template holding a page's main content.
func ContentTemplateFor(page string) string {
	return page + "-content"
}

func templateFuncs(t **template.Template) template.FuncMap {
	return template.FuncMap{
		"renderSection": func(page string, data any) (template.HTML, error) {
			if t == nil || *t == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*t).ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - rendered by our own html/template set; values were escaped during execution.
			return template.HTML(buf.String()), nil
		},
		"year":     func() int { return time.Now().Year() },
		"initials": initials,
	}
}

// initials returns up to two upper-case initials for an avatar badge.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "U"
	}
	return strings.ToUpper(string(out))
}
