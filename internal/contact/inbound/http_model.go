package inbound

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

// text accepts any JSON scalar and keeps it as a string. null and missing
// fields become "".
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*t = text(b)
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return &json.UnsupportedValueError{Str: string(b)}
		}
		*t = text(b)
	}
	return nil
}

// trap is the honeypot field. Any truthy JSON value trips it: non-empty
// strings (whitespace included), true, non-zero numbers, objects and arrays.
// false, zero, null and "" leave it empty.
type trap string

func (t *trap) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = trap(s)
	case b[0] == '{', b[0] == '[', bytes.Equal(b, []byte("true")):
		*t = trap(b)
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return &json.UnsupportedValueError{Str: string(b)}
		}
		if f == 0 {
			*t = ""
			return nil
		}
		*t = trap(b)
	}
	return nil
}

type ContactRequest struct {
	Name     text `json:"name"`
	Email    text `json:"email"`
	Company  text `json:"company"`
	Message  text `json:"message"`
	Honeypot trap `json:"honeypot"`
}

type ContactResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

type DebugEnvResponse struct {
	Provider string          `json:"provider"`
	Has      map[string]bool `json:"has"`
}

type DebugMailResponse struct {
	OK     bool   `json:"ok"`
	Verify bool   `json:"verify,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r DebugMailResponse) StatusCode() int {
	if r.OK {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
