package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/folio/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetQuery returns the trimmed query value of key.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// DecodeBody decodes a JSON or URL-encoded form body into dst.
//
// An empty body decodes as an empty object. Form fields are decoded as JSON
// strings keyed by field name, so dst uses the same json tags for both.
// Unknown fields are ignored.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		return r.decodeForm(dst)
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

func (r *Request) decodeForm(dst any) error {
	if err := r.ParseForm(); err != nil {
		return bodyError(err)
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return goerror.NewInvalidFormat("Request body too large.")
	}
	return goerror.NewInvalidFormat()
}
