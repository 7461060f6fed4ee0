package entity

import (
	"strings"
	"unicode"
)

// SpaceClass is the whitespace set browsers use for \s and String.trim:
// tab, LF, VT, FF, CR, BOM and every Unicode space, line or paragraph
// separator. It is a regexp character class body.
const SpaceClass = `\t\n\v\f\r\x{FEFF}\p{Z}`

// IsSpace reports whether r belongs to SpaceClass.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

func trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Submission is one contact form post. It is never stored.
type Submission struct {
	Name     string
	Email    string
	Company  string
	Message  string
	Honeypot string
}

// Trimmed returns a copy with surrounding whitespace removed from the visible
// fields. Honeypot keeps its raw value: whitespace alone still trips it.
func (s Submission) Trimmed() Submission {
	return Submission{
		Name:     trim(s.Name),
		Email:    trim(s.Email),
		Company:  trim(s.Company),
		Message:  trim(s.Message),
		Honeypot: s.Honeypot,
	}
}

// CompanyOrDash returns the company, or "-" when none was given.
func (s Submission) CompanyOrDash() string {
	if s.Company == "" {
		return "-"
	}
	return s.Company
}
