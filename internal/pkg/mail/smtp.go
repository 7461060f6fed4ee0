package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/folio/internal/pkg/clock"
	"github.com/shandysiswandi/folio/internal/pkg/uid"
)

var (
	// ErrSMTPHostPortRequired is returned when Host/Port are missing.
	ErrSMTPHostPortRequired = errors.New("smtp host and port are required")
	// ErrSMTPNoRecipients is returned when neither the message nor the config has a recipient.
	ErrSMTPNoRecipients = errors.New("no recipients provided")
	// ErrSMTPNoSender is returned when neither the message nor the config has a sender.
	ErrSMTPNoSender = errors.New("no sender provided")
	// ErrSMTPClosed is returned by a transport after Close.
	ErrSMTPClosed = errors.New("smtp transport is closed")
)

var tracer = otel.Tracer("folio/mail")

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Secure dials with implicit TLS. When false the session is upgraded
	// with STARTTLS if the server offers it.
	Secure bool
	// Username and Password authenticate with SASL PLAIN when Username is set.
	Username string
	Password string
	// From is the sender when Message.From is empty.
	From Address
	// To is the recipient when Message.To is empty.
	To Address
	// Timeout bounds a single Send or Verify. Zero leaves it to the context.
	Timeout time.Duration
	// LocalName is sent with EHLO on sessions without STARTTLS. Defaults to
	// "localhost".
	LocalName string
	// TLSConfig overrides the TLS settings; ServerName defaults to Host.
	TLSConfig *tls.Config
}

// SMTP is a Mail implementation backed by emersion/go-smtp.
//
// Every Send opens its own session, so one SMTP value is safe for concurrent use.
type SMTP struct {
	cfg    SMTPConfig
	clock  clock.Clocker
	uid    uid.StringID
	closed chan struct{}
}

// NewSMTP constructs an SMTP mail transport.
func NewSMTP(cfg SMTPConfig, clk clock.Clocker, gen uid.StringID) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}
	if cfg.LocalName == "" {
		cfg.LocalName = "localhost"
	}

	return &SMTP{cfg: cfg, clock: clk, uid: gen, closed: make(chan struct{})}, nil
}

// Config returns the settings the transport was built with.
func (s *SMTP) Config() SMTPConfig {
	return s.cfg
}

// Send delivers a message and returns its Message-ID.
func (s *SMTP) Send(ctx context.Context, msg Message) (string, error) {
	ctx, span := tracer.Start(ctx, "SMTP.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("smtp.host", s.cfg.Host),
		attribute.Int("smtp.port", s.cfg.Port),
		attribute.Bool("smtp.secure", s.cfg.Secure),
	)

	if msg.From.IsZero() {
		msg.From = s.cfg.From
	}
	if msg.From.IsZero() {
		return "", ErrSMTPNoSender
	}
	if len(msg.To) == 0 && !s.cfg.To.IsZero() {
		msg.To = []Address{s.cfg.To}
	}
	if len(msg.To) == 0 {
		return "", ErrSMTPNoRecipients
	}

	messageID := s.messageID(msg.From)
	raw, err := buildMessage(msg, messageID, s.clock.Now())
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	err = s.session(ctx, func(c *smtp.Client) error {
		if err := c.Mail(msg.From.Email, nil); err != nil {
			return err
		}
		for _, to := range msg.To {
			if err := c.Rcpt(to.Email, nil); err != nil {
				return err
			}
		}

		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return "", err
	}

	span.SetStatus(codes.Ok, "")
	return messageID, nil
}

// Verify connects, authenticates and issues NOOP without sending anything.
func (s *SMTP) Verify(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "SMTP.Verify", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := s.session(ctx, func(c *smtp.Client) error {
		return c.Noop()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verify failed")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Close marks the transport closed. Sessions already running finish normally.
func (s *SMTP) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}

// session connects, authenticates, runs fn and quits.
func (s *SMTP) session(ctx context.Context, fn func(c *smtp.Client) error) error {
	select {
	case <-s.closed:
		return ErrSMTPClosed
	default:
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if s.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
			return err
		}
	}

	if err := fn(c); err != nil {
		return err
	}

	return c.Quit()
}

// connect returns a client that has completed EHLO.
//
// Secure dials straight into TLS. Otherwise the server is greeted in plain
// text first and, when it advertises STARTTLS, that probe is dropped and a
// second connection is upgraded before any credentials are sent. go-smtp only
// offers STARTTLS at client construction, so the upgraded session introduces
// itself as "localhost" instead of LocalName.
func (s *SMTP) connect(ctx context.Context) (*smtp.Client, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	if s.cfg.Secure {
		tlsConn := tls.Client(conn, s.tlsConfig())
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return s.hello(smtp.NewClient(tlsConn))
	}

	c, err := s.hello(smtp.NewClient(conn))
	if err != nil {
		return nil, err
	}
	if ok, _ := c.Extension("STARTTLS"); !ok {
		return c, nil
	}
	_ = c.Quit()

	conn, err = s.dial(ctx)
	if err != nil {
		return nil, err
	}
	return smtp.NewClientStartTLS(conn, s.tlsConfig())
}

func (s *SMTP) hello(c *smtp.Client) (*smtp.Client, error) {
	if err := c.Hello(s.cfg.LocalName); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// dial opens a TCP connection that is closed as soon as ctx is done, which
// unblocks any pending read or write of the client on top of it.
func (s *SMTP) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	context.AfterFunc(ctx, func() { _ = conn.Close() })
	return conn, nil
}

func (s *SMTP) tlsConfig() *tls.Config {
	if s.cfg.TLSConfig != nil {
		cfg := s.cfg.TLSConfig.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = s.cfg.Host
		}
		return cfg
	}
	return &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
}

func (s *SMTP) messageID(from Address) string {
	domain := "localhost"
	if _, d, ok := cutLast(from.Email, "@"); ok && d != "" {
		domain = d
	}
	return "<" + s.uid.Generate() + "@" + domain + ">"
}
