package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/folio/internal/pkg/mail"
)

type DebugEnvOutput struct {
	Provider string
	Has      map[string]bool
}

// DebugEnv reports which mail settings are present. Values are never exposed.
func (s *Usecase) DebugEnv(ctx context.Context) DebugEnvOutput {
	_, span := s.startSpan(ctx, "DebugEnv")
	defer span.End()

	provider, has := mail.Presence(s.cfg)
	return DebugEnvOutput{Provider: provider, Has: has}
}

type DebugMailOutput struct {
	Verified bool
	// Error is the user-facing hint when verification failed.
	Error string
}

// DebugMail rebuilds the transport from the current configuration and
// verifies it against the provider.
func (s *Usecase) DebugMail(ctx context.Context) DebugMailOutput {
	ctx, span := s.startSpan(ctx, "DebugMail")
	defer span.End()

	err := s.repoMail.Rebuild(ctx)
	if err == nil {
		slog.InfoContext(ctx, "mail transport verified")
		return DebugMailOutput{Verified: true}
	}

	var cerr *mail.ConfigError
	if errors.As(err, &cerr) {
		slog.ErrorContext(ctx, "mail transport is not configured", "profile", cerr.Profile, "missing", cerr.Missing)
		return DebugMailOutput{Error: MsgNotConfigured}
	}

	slog.ErrorContext(ctx, "mail transport verify failed", "reason", mail.Classify(err).String(), "error", err)
	return DebugMailOutput{Error: transportHint(err)}
}
