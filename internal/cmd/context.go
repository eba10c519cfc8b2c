package cmd

import (
	"io"

	"github.com/jimezsa/jobhunt/internal/api"
	"github.com/jimezsa/jobhunt/internal/config"
	"github.com/jimezsa/jobhunt/internal/saved"
	"github.com/jimezsa/jobhunt/internal/session"
	"github.com/jimezsa/jobhunt/internal/store"
	"github.com/jimezsa/jobhunt/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
	Proxies    []string

	Store   store.Store
	Session *session.Session
	API     *api.Client
}

// savedBackend is the backend when signed in and the local store otherwise.
func (c *Context) savedBackend() saved.Backend {
	if c.Session != nil && c.Session.IsAuthed() {
		return c.API
	}
	return saved.NewLocalBackend(c.Store)
}
