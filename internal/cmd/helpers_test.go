package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/config"
	"github.com/jimezsa/jobhunt/internal/models"
	"github.com/jimezsa/jobhunt/internal/session"
	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/jimezsa/jobhunt/internal/ui"
	"github.com/rs/zerolog"
)

type route struct {
	status int
	body   string
}

// backend answers requests by method and path; the query string is recorded
// but not matched.
type backend struct {
	mu     sync.Mutex
	routes map[string]route
	urls   []string
}

func newBackend() *backend {
	return &backend{routes: map[string]route{}}
}

func (b *backend) on(method, path string, status int, body string) {
	b.routes[method+" "+path] = route{status: status, body: body}
}

func (b *backend) Do(req *fhttp.Request) (*fhttp.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.urls = append(b.urls, req.Method+" "+req.URL.String())

	r, ok := b.routes[req.Method+" "+req.URL.Path]
	if !ok {
		r = route{status: 404, body: `{"error":"not found"}`}
	}
	return &fhttp.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Header:     fhttp.Header{},
	}, nil
}

func (b *backend) requested(prefix string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, u := range b.urls {
		if strings.HasPrefix(u, prefix) {
			out = append(out, u)
		}
	}
	return out
}

func newTestContext(t *testing.T, doer api.Doer) (*Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv("JOBHUNT_CONFIG_DIR", t.TempDir())

	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	sess, err := session.Open(context.Background(), st)
	if err != nil {
		t.Fatalf("session.Open() error = %v", err)
	}

	var out bytes.Buffer
	return &Context{
		Out:       &out,
		Err:       &out,
		UI:        ui.New(&out, &out, ui.ColorNever, true, ui.ThemeLight),
		Config:    config.DefaultConfig(),
		ConfigDir: t.TempDir(),
		Logger:    zerolog.Nop(),
		Version:   "test",
		ColorMode: ui.ColorNever,
		Store:     st,
		Session:   sess,
		API:       api.New(doer, "http://backend.test", sess, zerolog.Nop()),
	}, &out
}

func signIn(t *testing.T, ctx *Context, role models.Role) {
	t.Helper()
	err := ctx.Session.Login(context.Background(), models.AuthResult{
		Token: "token-" + string(role),
		User:  models.User{ID: "u1", Name: "Acme", Email: "hr@acme.test", Role: role},
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}
