package email

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/folio/internal/pkg/instrument"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
)

type holder interface {
	Load() (mail.Mail, error)
	Rebuild(ctx context.Context) error
}

// Mail sends through whichever transport the holder has at call time.
type Mail struct {
	holder holder
	ins    instrument.Instrumentation
}

func New(h holder, ins instrument.Instrumentation) *Mail {
	return &Mail{holder: h, ins: ins}
}

func (m *Mail) Send(ctx context.Context, msg mail.Message) (string, error) {
	ctx, span := m.ins.Tracer("contact.outbound.email").Start(ctx, "Send")
	defer span.End()

	client, err := m.holder.Load()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	id, err := client.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return "", err
	}

	span.SetAttributes(attribute.String("mail.message_id", id))
	return id, nil
}

func (m *Mail) Rebuild(ctx context.Context) error {
	ctx, span := m.ins.Tracer("contact.outbound.email").Start(ctx, "Rebuild")
	defer span.End()

	if err := m.holder.Rebuild(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rebuild failed")
		return err
	}

	return nil
}
