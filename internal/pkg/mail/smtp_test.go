package mail_test

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/folio/internal/pkg/clock"
	"github.com/shandysiswandi/folio/internal/pkg/mail"
	"github.com/shandysiswandi/folio/internal/pkg/mail/mailtest"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTransport(t *testing.T, srv *mailtest.Server, user, pass string) *mail.SMTP {
	t.Helper()

	tr, err := mail.NewSMTP(mail.SMTPConfig{
		Host:     srv.Host,
		Port:     srv.Port,
		Username: user,
		Password: pass,
		From:     mail.Address{Name: "Portfolio", Email: "owner@example.com"},
		To:       mail.Address{Email: "inbox@example.com"},
		Timeout:  5 * time.Second,
	}, clock.Fixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), fixedID("0190-abc"))
	require.NoError(t, err)

	return tr
}

func TestNewSMTP_RequiresHostAndPort(t *testing.T) {
	_, err := mail.NewSMTP(mail.SMTPConfig{Host: "smtp.example.com"}, clock.Fixed(time.Time{}), fixedID("x"))
	assert.ErrorIs(t, err, mail.ErrSMTPHostPortRequired)
}

func TestSMTP_Send(t *testing.T) {
	// Arrange
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"))
	tr := newTransport(t, srv, "owner@example.com", "secret")

	// Act
	id, err := tr.Send(context.Background(), mail.Message{
		ReplyTo:  mail.Address{Name: "Ada", Email: "ada@example.org"},
		Subject:  "Hello",
		TextBody: "line one\nline two",
		HTMLBody: "<p>line one<br/>line two</p>",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "<0190-abc@example.com>", id)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "owner@example.com", msgs[0].From)
	assert.Equal(t, []string{"inbox@example.com"}, msgs[0].To)

	raw := string(msgs[0].Data)
	assert.Contains(t, raw, `From: "Portfolio" <owner@example.com>`)
	assert.Contains(t, raw, `Reply-To: "Ada" <ada@example.org>`)
	assert.Contains(t, raw, "Message-ID: <0190-abc@example.com>")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "line one\r\nline two")
}

func TestSMTP_Send_StartTLS(t *testing.T) {
	// Arrange
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"), mailtest.WithTLS())
	tr, err := mail.NewSMTP(mail.SMTPConfig{
		Host:      srv.Host,
		Port:      srv.Port,
		Secure:    false,
		Username:  "owner@example.com",
		Password:  "secret",
		From:      mail.Address{Email: "owner@example.com"},
		To:        mail.Address{Email: "inbox@example.com"},
		Timeout:   5 * time.Second,
		TLSConfig: srv.ClientTLS,
	}, clock.Fixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), fixedID("0190-tls"))
	require.NoError(t, err)

	// Act
	_, err = tr.Send(context.Background(), mail.Message{Subject: "Hello", TextBody: "over tls"})

	// Assert
	require.NoError(t, err)
	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].TLS)
	assert.NoError(t, tr.Verify(context.Background()))
}

func TestSMTP_Send_StartTLSUntrusted(t *testing.T) {
	// Arrange
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"), mailtest.WithTLS())
	tr := newTransport(t, srv, "owner@example.com", "secret")

	// Act
	_, err := tr.Send(context.Background(), mail.Message{Subject: "Hello", TextBody: "over tls"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, mail.ReasonConnection, mail.Classify(err))
	assert.Empty(t, srv.Messages())
}

func TestSMTP_Send_PlainWithoutStartTLS(t *testing.T) {
	srv := mailtest.NewServer(t)
	tr := newTransport(t, srv, "", "")

	_, err := tr.Send(context.Background(), mail.Message{Subject: "Hello", TextBody: "plain"})

	require.NoError(t, err)
	require.Len(t, srv.Messages(), 1)
	assert.False(t, srv.Messages()[0].TLS)
}

func TestSMTP_Send_AuthFailure(t *testing.T) {
	// Arrange
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"))
	tr := newTransport(t, srv, "owner@example.com", "wrong")

	// Act
	_, err := tr.Send(context.Background(), mail.Message{Subject: "x", TextBody: "y"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, mail.ReasonAuth, mail.Classify(err))
	assert.Empty(t, srv.Messages())
}

func TestSMTP_Send_Rejected(t *testing.T) {
	// Arrange
	srv := mailtest.NewServer(t,
		mailtest.WithAuth("owner@example.com", "secret"),
		mailtest.WithRejectData(&smtp.SMTPError{Code: 554, EnhancedCode: smtp.EnhancedCode{5, 7, 1}, Message: "spam"}),
	)
	tr := newTransport(t, srv, "owner@example.com", "secret")

	// Act
	_, err := tr.Send(context.Background(), mail.Message{Subject: "x", TextBody: "y"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, mail.ReasonRejected, mail.Classify(err))
}

func TestSMTP_Send_ConnectionRefused(t *testing.T) {
	// Arrange
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	tr, err := mail.NewSMTP(mail.SMTPConfig{
		Host: "127.0.0.1", Port: addr.Port,
		From: mail.Address{Email: "owner@example.com"},
		To:   mail.Address{Email: "inbox@example.com"},
	}, clock.Fixed(time.Time{}), fixedID("x"))
	require.NoError(t, err)

	// Act
	_, err = tr.Send(context.Background(), mail.Message{TextBody: "y"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, mail.ReasonConnection, mail.Classify(err))
}

func TestSMTP_Send_NoSenderOrRecipient(t *testing.T) {
	tr, err := mail.NewSMTP(mail.SMTPConfig{Host: "localhost", Port: 25}, clock.Fixed(time.Time{}), fixedID("x"))
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), mail.Message{})
	assert.ErrorIs(t, err, mail.ErrSMTPNoSender)

	_, err = tr.Send(context.Background(), mail.Message{From: mail.Address{Email: "a@b.co"}})
	assert.ErrorIs(t, err, mail.ErrSMTPNoRecipients)
}

func TestSMTP_Verify(t *testing.T) {
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"))

	assert.NoError(t, newTransport(t, srv, "owner@example.com", "secret").Verify(context.Background()))

	err := newTransport(t, srv, "owner@example.com", "nope").Verify(context.Background())
	assert.Equal(t, mail.ReasonAuth, mail.Classify(err))
	assert.Empty(t, srv.Messages())
}

func TestSMTP_Close(t *testing.T) {
	srv := mailtest.NewServer(t, mailtest.WithAuth("owner@example.com", "secret"))
	tr := newTransport(t, srv, "owner@example.com", "secret")

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())

	_, err := tr.Send(context.Background(), mail.Message{TextBody: "y"})
	assert.True(t, errors.Is(err, mail.ErrSMTPClosed))
}

func TestSMTP_Send_Timeout(t *testing.T) {
	// Arrange: a listener that accepts but never greets.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	conns := make(chan net.Conn, 1)
	go func() {
		if c, err := l.Accept(); err == nil {
			conns <- c
		}
	}()
	t.Cleanup(func() {
		select {
		case c := <-conns:
			_ = c.Close()
		default:
		}
	})

	tr, err := mail.NewSMTP(mail.SMTPConfig{
		Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port,
		From:    mail.Address{Email: "owner@example.com"},
		To:      mail.Address{Email: "inbox@example.com"},
		Timeout: 200 * time.Millisecond,
	}, clock.Fixed(time.Time{}), fixedID("x"))
	require.NoError(t, err)

	// Act
	start := time.Now()
	_, err = tr.Send(context.Background(), mail.Message{TextBody: "y"})

	// Assert
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, mail.ReasonConnection, mail.Classify(err))
}

func TestAddress_String(t *testing.T) {
	assert.Equal(t, "<a@b.co>", mail.Address{Email: "a@b.co"}.String())
	assert.True(t, strings.HasPrefix(mail.Address{Name: "Zoë", Email: "z@b.co"}.String(), "=?utf-8?"))
}
