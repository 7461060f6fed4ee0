package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/folio/internal/contact/entity"
	"github.com/shandysiswandi/folio/internal/pkg/goerror"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
)

type SubmitInput struct {
	Name     string
	Email    string
	Company  string
	Message  string
	Honeypot string
}

type SubmitOutput struct {
	MessageID string
}

// Submit validates a contact form post and forwards it by email.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	sub := entity.Submission{
		Name:     in.Name,
		Email:    in.Email,
		Company:  in.Company,
		Message:  in.Message,
		Honeypot: in.Honeypot,
	}.Trimmed()

	mode := entity.ParseValidationMode(s.cfg.GetString("contact.validation_mode"))
	if err := s.validate(sub, mode); err != nil {
		var gerr *goerror.Error
		switch {
		case sub.Honeypot != "":
			slog.WarnContext(ctx, "contact submission rejected by honeypot")
			s.count(ctx, entity.OutcomeSpam)
		case errors.As(err, &gerr) && gerr.Type() == goerror.TypeValidation:
			s.count(ctx, entity.OutcomeInvalid)
		default:
			slog.ErrorContext(ctx, "failed to validate contact submission", "error", err)
			s.count(ctx, entity.OutcomeFailed)
		}
		return nil, err
	}

	messageID, err := s.repoMail.Send(ctx, composeMessage(sub))
	if errors.Is(err, mail.ErrNotConfigured) {
		slog.ErrorContext(ctx, "contact submission dropped, mail transport is not configured")
		s.count(ctx, entity.OutcomeNotConfigured)
		return nil, goerror.NewServer(err, MsgNotConfigured)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send contact email", "reason", mail.Classify(err).String(), "error", err)
		s.count(ctx, entity.OutcomeFailed)
		return nil, goerror.NewServer(err, transportHint(err))
	}

	slog.InfoContext(ctx, "contact email sent", "message_id", messageID)
	s.count(ctx, entity.OutcomeSent)

	return &SubmitOutput{MessageID: messageID}, nil
}
