package entity

// Outcome is how a submission ended, used as a metric attribute.
type Outcome string

const (
	OutcomeSent          Outcome = "sent"
	OutcomeInvalid       Outcome = "invalid"
	OutcomeSpam          Outcome = "spam"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeFailed        Outcome = "failed"
)

// ValidationMode selects how many field errors a rejected submission reports.
type ValidationMode string

const (
	// ValidationModeAll reports every failing field.
	ValidationModeAll ValidationMode = "all"
	// ValidationModeFirst reports only the first failing field in rule order.
	ValidationModeFirst ValidationMode = "first"
)

// ParseValidationMode maps a config value to a mode, defaulting to all.
func ParseValidationMode(s string) ValidationMode {
	if ValidationMode(s) == ValidationModeFirst {
		return ValidationModeFirst
	}
	return ValidationModeAll
}
