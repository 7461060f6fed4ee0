package inbound

import (
	"github.com/shandysiswandi/folio/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, static *Static) {
	r.GET("/health", Health)
	r.Fallback(static)
}

// Health reports that the process is up.
func Health(*router.Request) (any, error) {
	return nil, nil
}
