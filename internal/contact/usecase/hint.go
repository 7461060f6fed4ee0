package usecase

import "github.com/shandysiswandi/folio/internal/pkg/mail"

// MsgNotConfigured is returned when no mail transport could be built.
const MsgNotConfigured = "Email is not configured on the server."

var transportHints = map[mail.Reason]string{
	mail.ReasonAuth:         "Email authentication failed. Check SMTP username and app password.",
	mail.ReasonHostNotFound: "Email server host could not be resolved. Check the SMTP host configuration.",
	mail.ReasonConnection:   "Could not connect to the email server. Check SMTP host, port and secure settings.",
	mail.ReasonRejected:     "Email provider rejected the message. Check that the SMTP credentials are valid.",
	mail.ReasonUnknown:      "Failed to send message. Try later.",
}

// transportHint returns the user-facing message for a delivery failure.
// Provider text never reaches it.
func transportHint(err error) string {
	if hint, ok := transportHints[mail.Classify(err)]; ok {
		return hint
	}
	return transportHints[mail.ReasonUnknown]
}
