package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/folio/internal/pkg/config"
	"github.com/shandysiswandi/folio/internal/pkg/instrument"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
	"github.com/shandysiswandi/folio/internal/pkg/validator"
)

type stubMail struct {
	sent       []mail.Message
	id         string
	sendErr    error
	rebuildErr error
}

func (s *stubMail) Send(_ context.Context, msg mail.Message) (string, error) {
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.sent = append(s.sent, msg)
	return s.id, nil
}

func (s *stubMail) Rebuild(context.Context) error {
	return s.rebuildErr
}

func newTestUsecase(t *testing.T, yaml string, repo *stubMail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml), nil)
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	uc, err := NewContact(Dependency{
		Config:     cfg,
		Validator:  v,
		RepoMail:   repo,
		Instrument: instrument.NewNoop(),
	})
	require.NoError(t, err)

	return uc
}
