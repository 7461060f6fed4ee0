package site

import (
	"github.com/shandysiswandi/folio/internal/pkg/config"
	"github.com/shandysiswandi/folio/internal/pkg/router"
	"github.com/shandysiswandi/folio/internal/site/inbound"
)

type Dependency struct {
	Config config.Config
	Router *router.Router
}

// New mounts the liveness endpoint and the static asset fallback.
func New(dep Dependency) error {
	static, err := inbound.NewStatic(dep.Config.GetString("static.dir"), dep.Config.GetString("static.index"))
	if err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, static)

	return nil
}
