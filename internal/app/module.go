package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/folio/internal/contact"
	"github.com/shandysiswandi/folio/internal/site"
)

// initModules mounts contact before site: the site module installs the
// catch-all fallback.
func (a *App) initModules() {
	if err := contact.New(contact.Dependency{
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
		Router:     a.router,
		Mail:       a.mail,
	}); err != nil {
		slog.Error("failed to init module contact", "error", err)
		os.Exit(1)
	}

	if err := site.New(site.Dependency{
		Config: a.config,
		Router: a.router,
	}); err != nil {
		slog.Error("failed to init module site", "error", err)
		os.Exit(1)
	}
}
