package mail

import (
	"context"
	"io"
	netmail "net/mail"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// String formats the address for a header, encoding the name when needed.
func (a Address) String() string {
	return (&netmail.Address{Name: a.Name, Address: a.Email}).String()
}

// IsZero reports whether the address has no mailbox.
func (a Address) IsZero() bool {
	return a.Email == ""
}

// Message represents an email payload.
//
// From and To may be left empty; the transport then uses its configured
// sender and recipient.
type Message struct {
	From    Address
	To      []Address
	ReplyTo Address
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML alternative.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	// Send dispatches the message and returns the Message-ID it was sent with.
	Send(ctx context.Context, msg Message) (string, error)
	// Verify checks that the provider accepts a connection and the credentials.
	Verify(ctx context.Context) error
}
