package template

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
	"github.com/afianhyira/Campus-Event-Frontend/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderHome(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	rn, err := NewFromFS(web.FS, time.UTC, zap.NewNop())
	require.NoError(err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	err = rn.Render(w, r, "home.html", &Data{
		PageTitle: "Home",
		User:      &model.User{Name: "Kofi", Role: model.RoleAdmin},
		Flashes:   []model.Flash{model.Success("Logged in successfully")},
	})
	require.NoError(err)

	body := w.Body.String()
	assert.Equal("text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(body, "<title>Home · Campus Events</title>")
	assert.Contains(body, "Browse Events")
	assert.Contains(body, "/admin/dashboard")
	assert.Contains(body, `flash-success`)
	assert.Contains(body, "Logged in successfully")
}

func TestRenderAnonymous(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	rn, err := NewFromFS(web.FS, time.UTC, zap.NewNop())
	require.NoError(err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	require.NoError(rn.Render(w, r, "home.html", &Data{PageTitle: "Home"}))

	assert.Contains(w.Body.String(), "Get started")
	assert.NotContains(w.Body.String(), "Dashboard")
}

func TestRenderEscapes(t *testing.T) {
	require := require.New(t)

	rn, err := NewFromFS(web.FS, time.UTC, zap.NewNop())
	require.NoError(err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/login", nil)
	require.NoError(rn.Render(w, r, "login.html", &Data{
		PageTitle: "Login",
		Page:      struct{ Email string }{Email: `"><script>`},
	}))

	assert.NotContains(t, w.Body.String(), "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"tmpl/base.html": {Data: []byte(`<p>{{template "content" .}}</p>`)},
		"tmpl/a.html":    {Data: []byte(`{{template "base.html" .}}{{define "content"}}{{.PageTitle}}{{end}}`)},
	}

	rn, err := NewFromFS(fsys, time.UTC, zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	require.NoError(t, rn.Render(w, r, "a.html", &Data{PageTitle: "hi"}))
	assert.Equal(t, "<p>hi</p>", w.Body.String())

	assert.Error(t, rn.Render(httptest.NewRecorder(), r, "missing.html", &Data{}))
}

func TestParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"tmpl/base.html": {Data: []byte(`{{template "content" .}}`)},
		"tmpl/bad.html":  {Data: []byte(`{{if}}`)},
	}

	_, err := NewFromFS(fsys, time.UTC, zap.NewNop())
	assert.ErrorContains(t, err, "parse template bad.html")
}
