package template

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/afianhyira/Campus-Event-Frontend/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	templateDir string = "tmpl"
	baseFile    string = "base.html"
)

// Data is handed to every page. Page carries the screen specific state.
type Data struct {
	PageTitle string
	User      *model.User
	Flashes   []model.Flash
	Path      string
	Page      any
}

type Renderer struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func New(p Params) (*Renderer, error) {
	loc, err := p.Config.Portal.Location()
	if err != nil {
		return nil, fmt.Errorf("load portal timezone: %w", err)
	}
	return NewFromFS(web.FS, loc, p.Log)
}

// NewFromFS parses every page under tmpl/ of fsys together with base.html.
func NewFromFS(fsys fs.FS, loc *time.Location, log *zap.Logger) (*Renderer, error) {
	names, err := fs.Glob(fsys, templateDir+"/*.html")
	if err != nil {
		return nil, err
	}

	funcs := funcMap(loc)
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page := strings.TrimPrefix(name, templateDir+"/")
		if page == baseFile {
			continue
		}

		t, err := template.New(page).Funcs(funcs).ParseFS(fsys, name, templateDir+"/"+baseFile)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages, log: log}, nil
}

// Render executes tmpl into a buffer first so a failing template never
// leaves a half written page behind.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, tmpl string, td *Data) error {
	t, ok := rn.pages[tmpl]
	if !ok {
		return fmt.Errorf("unknown template %q", tmpl)
	}
	if td.Path == "" {
		td.Path = r.URL.Path
	}

	buf := &bytes.Buffer{}

	err := t.Execute(buf, td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}

func funcMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.In(loc).Format("Monday, January 2, 2006")
		},
		"shortDate": func(t time.Time) string {
			return t.In(loc).Format("Jan 2, 2006")
		},
		"clock": func(t time.Time) string {
			return t.In(loc).Format("3:04 PM")
		},
		"day": func(t time.Time) string {
			return t.In(loc).Format("2006-01-02")
		},
		"month": func(t time.Time) string {
			return t.In(loc).Format("January 2006")
		},
	}
}
