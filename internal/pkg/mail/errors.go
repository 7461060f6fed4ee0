package mail

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"

	"github.com/emersion/go-smtp"
)

// Reason is the category of a delivery failure.
type Reason int

const (
	// ReasonUnknown is any failure not matched below.
	ReasonUnknown Reason = iota
	// ReasonAuth means the provider refused the credentials.
	ReasonAuth
	// ReasonHostNotFound means the SMTP host does not resolve.
	ReasonHostNotFound
	// ReasonConnection means the TCP or TLS connection failed or timed out.
	ReasonConnection
	// ReasonRejected means the provider answered with any other SMTP error.
	ReasonRejected
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonAuth:
		return "auth"
	case ReasonHostNotFound:
		return "host_not_found"
	case ReasonConnection:
		return "connection"
	case ReasonRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var enhancedAuthFailed = smtp.EnhancedCode{5, 7, 8}

// Classify maps a Send or Verify error to a Reason.
func Classify(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}

	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		switch {
		case smtpErr.Code == 530, smtpErr.Code == 534, smtpErr.Code == 535,
			smtpErr.EnhancedCode == enhancedAuthFailed:
			return ReasonAuth
		default:
			return ReasonRejected
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return ReasonHostNotFound
	}

	var (
		netErr    net.Error
		recordErr tls.RecordHeaderError
		verifyErr *tls.CertificateVerificationError
		hostErr   x509.HostnameError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed),
		errors.As(err, &netErr),
		errors.As(err, &recordErr),
		errors.As(err, &verifyErr),
		errors.As(err, &hostErr):
		return ReasonConnection
	}

	return ReasonUnknown
}
