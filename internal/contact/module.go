package contact

import (
	"github.com/shandysiswandi/folio/internal/contact/inbound"
	"github.com/shandysiswandi/folio/internal/contact/outbound/email"
	"github.com/shandysiswandi/folio/internal/contact/usecase"
	"github.com/shandysiswandi/folio/internal/pkg/config"
	"github.com/shandysiswandi/folio/internal/pkg/instrument"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
	"github.com/shandysiswandi/folio/internal/pkg/router"
)

type Dependency struct {
	Config     config.Config
	Instrument instrument.Instrumentation
	Validator  usecase.RuleValidator
	Router     *router.Router
	Mail       *mail.Holder
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc, err := usecase.NewContact(usecase.Dependency{
		Config:     dep.Config,
		Validator:  dep.Validator,
		RepoMail:   repoMail,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetBool("debug.enabled"))

	return nil
}
