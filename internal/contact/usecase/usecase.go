package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/folio/internal/contact/entity"
	"github.com/shandysiswandi/folio/internal/pkg/config"
	"github.com/shandysiswandi/folio/internal/pkg/instrument"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
	"github.com/shandysiswandi/folio/internal/pkg/validator"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
	Rebuild(ctx context.Context) error
}

// RuleValidator is a validator that accepts named string rules.
type RuleValidator interface {
	validator.Validator
	RegisterRule(tag string, rule func(string) bool, message string) error
}

type Usecase struct {
	cfg         config.Config
	validator   validator.Validator
	repoMail    repoMail
	ins         instrument.Instrumentation
	submissions metric.Int64Counter
}

type Dependency struct {
	Config     config.Config
	Validator  RuleValidator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

func NewContact(dep Dependency) (*Usecase, error) {
	if err := registerRules(dep.Validator); err != nil {
		return nil, err
	}

	counter, err := dep.Instrument.Meter("contact.usecase").Int64Counter("contact.submissions",
		metric.WithDescription("Contact form submissions by outcome"))
	if err != nil {
		slog.Error("failed to create contact submissions counter", "error", err)
	}

	return &Usecase{
		cfg:         dep.Config,
		validator:   dep.Validator,
		repoMail:    dep.RepoMail,
		ins:         dep.Instrument,
		submissions: counter,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}

func (s *Usecase) count(ctx context.Context, outcome entity.Outcome) {
	if s.submissions == nil {
		return
	}
	s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}
