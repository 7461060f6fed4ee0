package usecase

import (
	"html"
	"strings"

	"github.com/shandysiswandi/folio/internal/contact/entity"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
)

// composeMessage builds the notification for a validated submission. Sender
// and recipient are left to the transport.
func composeMessage(in entity.Submission) mail.Message {
	subject := "Portfolio Inquiry — " + in.Name
	if in.Company != "" {
		subject += " · " + in.Company
	}

	text := "From: " + in.Name + " <" + in.Email + ">\n" +
		"Company: " + in.CompanyOrDash() + "\n\n" +
		in.Message

	var b strings.Builder
	b.WriteString("<h2>New Portfolio Inquiry</h2>\n")
	b.WriteString("<p><b>Name:</b> " + html.EscapeString(in.Name) + "</p>\n")
	b.WriteString("<p><b>Email:</b> " + html.EscapeString(in.Email) + "</p>\n")
	b.WriteString("<p><b>Company:</b> " + html.EscapeString(in.CompanyOrDash()) + "</p>\n")
	b.WriteString("<p><b>Message:</b></p>\n")
	b.WriteString("<p>" + newlinesToBreaks(html.EscapeString(in.Message)) + "</p>\n")

	return mail.Message{
		ReplyTo:  mail.Address{Name: in.Name, Email: in.Email},
		Subject:  subject,
		TextBody: text,
		HTMLBody: b.String(),
	}
}

func newlinesToBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
