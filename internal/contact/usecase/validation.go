package usecase

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/shandysiswandi/folio/internal/contact/entity"
	"github.com/shandysiswandi/folio/internal/pkg/goerror"
	"github.com/shandysiswandi/folio/internal/pkg/validator"
)

// User-facing validation messages.
const (
	MsgSpam            = "Spam detected."
	MsgName            = "Please enter your full name."
	MsgEmail           = "Please enter a valid email address."
	MsgMessageTooShort = "Message should be at least 10 characters."
	MsgMessageTooLong  = "Message too long (max 4000 characters)."
)

const (
	nameMinLen    = 2
	messageMinLen = 10
	messageMaxLen = 4000
)

// emailPattern is local@domain.tld with no whitespace or extra @ in any part.
var emailPattern = regexp.MustCompile(`(?i)^[^` + entity.SpaceClass + `@]+@[^` + entity.SpaceClass + `@]+\.[^` + entity.SpaceClass + `@]+$`)

// fieldOrder is the order rules are evaluated in, used to pick the first error.
var fieldOrder = []string{"name", "email", "message"}

// fields carries the submission through the validator. Rules run on
// already trimmed values.
type fields struct {
	Name    string `json:"name" validate:"contact_name"`
	Email   string `json:"email" validate:"contact_email"`
	Company string `json:"company"`
	Message string `json:"message" validate:"contact_message_min,contact_message_max"`
}

func registerRules(v RuleValidator) error {
	return errors.Join(
		v.RegisterRule("contact_name", func(s string) bool {
			return utf8.RuneCountInString(s) >= nameMinLen
		}, MsgName),
		v.RegisterRule("contact_email", emailPattern.MatchString, MsgEmail),
		v.RegisterRule("contact_message_min", func(s string) bool {
			return utf8.RuneCountInString(s) >= messageMinLen
		}, MsgMessageTooShort),
		v.RegisterRule("contact_message_max", func(s string) bool {
			return utf8.RuneCountInString(s) <= messageMaxLen
		}, MsgMessageTooLong),
	)
}

// validate checks a trimmed submission. A tripped honeypot returns the spam
// error without field detail. The error message is always the first failing
// rule; the field map holds every failure unless mode is first.
func (s *Usecase) validate(in entity.Submission, mode entity.ValidationMode) error {
	if in.Honeypot != "" {
		return goerror.NewInvalidInput(MsgSpam)
	}

	err := s.validator.Validate(fields{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Message: in.Message,
	})
	if err == nil {
		return nil
	}

	var verr validator.V10ValidationError
	if !errors.As(err, &verr) {
		return goerror.NewServer(err)
	}

	for _, field := range fieldOrder {
		msg, failed := verr[field]
		if !failed {
			continue
		}
		if mode == entity.ValidationModeFirst {
			return goerror.NewInvalidInput(msg, field, msg)
		}
		return goerror.NewInvalidFields(msg, verr.Values())
	}

	return goerror.NewInvalidFields("Invalid input.", verr.Values())
}
