package inbound

import (
	"github.com/shandysiswandi/folio/internal/pkg/router"
)

// RegisterHTTPEndpoint mounts the contact endpoints. The debug endpoints are
// only mounted when debug is true.
func RegisterHTTPEndpoint(r *router.Router, uc uc, debug bool) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/contact", end.Submit)

	if debug {
		r.GET("/api/debug/env", end.DebugEnv)
		r.GET("/api/debug/mail", end.DebugMail)
	}
}
