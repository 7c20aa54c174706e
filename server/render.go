package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/topi314/csat-counter/server/countdown"
)

var ErrTemplateNotFound = errors.New("template not found")

// Renderer turns a template name and the request into a response.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, opts ...RenderOpt) error
}

type RenderOpt func(o *RenderOptions)

type RenderOptions struct {
	Status int
	Data   any
}

// ApplyRenderOpts returns the options after applying opts to the defaults.
func ApplyRenderOpts(opts ...RenderOpt) RenderOptions {
	o := RenderOptions{
		Status: http.StatusOK,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStatus overrides the default 200 status.
func WithStatus(status int) RenderOpt {
	return func(o *RenderOptions) {
		o.Status = status
	}
}

func WithData(data any) RenderOpt {
	return func(o *RenderOptions) {
		o.Data = data
	}
}

var templateFuncs = template.FuncMap{
	"timestamp": func(t time.Time) int64 {
		return t.UnixMilli()
	},
	"seconds": func(d time.Duration) int {
		return int(d / time.Second)
	},
	"formatTimer": countdown.FormatTimer,
	"padDays": func(days int) string {
		return fmt.Sprintf("%03d", days)
	},
}

// ParseTemplates parses every .html and .gohtml file in fsys. Templates are
// named by their slash separated path inside fsys, like "counter/404.html".
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	t := template.New("templates").Funcs(templateFuncs)

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := path.Ext(name); ext != ".html" && ext != ".gohtml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err = t.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// NewTemplateRenderer parses the templates in fsys once. With reload set the
// templates are parsed again on every render so edits show up without a
// restart.
func NewTemplateRenderer(fsys fs.FS, reload bool, minifyHTML bool) (*TemplateRenderer, error) {
	var templates func() (*template.Template, error)
	if reload {
		templates = func() (*template.Template, error) {
			return ParseTemplates(fsys)
		}
	} else {
		t, err := ParseTemplates(fsys)
		if err != nil {
			return nil, err
		}
		templates = func() (*template.Template, error) {
			return t, nil
		}
	}

	var m *minify.M
	if minifyHTML {
		m = minify.New()
		m.AddFunc("text/html", html.Minify)
	}

	return &TemplateRenderer{
		templates: templates,
		minifier:  m,
	}, nil
}

type TemplateRenderer struct {
	templates func() (*template.Template, error)
	minifier  *minify.M
}

// Render executes the template into a buffer first, so nothing is written
// to w when the template fails.
func (t *TemplateRenderer) Render(w http.ResponseWriter, r *http.Request, name string, opts ...RenderOpt) error {
	o := ApplyRenderOpts(opts...)

	templates, err := t.templates()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	buf := &bytes.Buffer{}
	if err = tmpl.Execute(buf, o.Data); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}

	if t.minifier != nil {
		minified := &bytes.Buffer{}
		if err = t.minifier.Minify("text/html", minified, buf); err != nil {
			return fmt.Errorf("failed to minify template %q: %w", name, err)
		}
		buf = minified
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(o.Status)
	if r.Method == http.MethodHead {
		return nil
	}

	if _, err = buf.WriteTo(w); err != nil {
		slog.DebugContext(r.Context(), "Failed to write rendered template", slog.String("template", name), slog.Any("err", err))
	}
	return nil
}
