package inbound

import (
	"context"

	"github.com/shandysiswandi/folio/internal/contact/usecase"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	DebugEnv(ctx context.Context) usecase.DebugEnvOutput
	DebugMail(ctx context.Context) usecase.DebugMailOutput
}
