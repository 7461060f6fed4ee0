package mail

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/samber/lo"
)

// buildMessage renders msg as an RFC 5322 message with CRLF line endings.
// Bodies are quoted-printable; with an HTML body the message is
// multipart/alternative.
func buildMessage(msg Message, messageID string, now time.Time) ([]byte, error) {
	var body bytes.Buffer
	contentType := "text/plain; charset=UTF-8"

	if msg.HTMLBody == "" {
		if err := writeQP(&body, msg.TextBody); err != nil {
			return nil, err
		}
	} else {
		mw := multipart.NewWriter(&body)
		contentType = "multipart/alternative; boundary=" + mw.Boundary()

		for _, part := range []struct{ ctype, text string }{
			{"text/plain; charset=UTF-8", msg.TextBody},
			{"text/html; charset=UTF-8", msg.HTMLBody},
		} {
			w, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":              {part.ctype},
				"Content-Transfer-Encoding": {"quoted-printable"},
			})
			if err != nil {
				return nil, err
			}
			if err := writeQP(w, part.text); err != nil {
				return nil, err
			}
		}

		if err := mw.Close(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writeHeader(&buf, "From", msg.From.String())
	writeHeader(&buf, "To", strings.Join(lo.Map(msg.To, func(a Address, _ int) string {
		return a.String()
	}), ", "))
	if !msg.ReplyTo.IsZero() {
		writeHeader(&buf, "Reply-To", msg.ReplyTo.String())
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "Date", now.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID)
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", contentType)
	if msg.HTMLBody == "" {
		writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	}
	buf.WriteString("\r\n")
	buf.Write(body.Bytes())

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	fmt.Fprintf(buf, "%s: %s\r\n", key, value)
}

func writeQP(w io.Writer, text string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := io.WriteString(qp, toCRLF(text)); err != nil {
		return err
	}
	return qp.Close()
}

func toCRLF(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
