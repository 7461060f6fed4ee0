package inbound

import (
	"github.com/shandysiswandi/folio/internal/contact/usecase"
	"github.com/shandysiswandi/folio/internal/pkg/router"
)

const msgSent = "Thank you! Your message has been sent."

type HTTPEndpoint struct {
	uc uc
}

// Submit accepts a contact form post as JSON or URL-encoded form.
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	var req ContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Name:     string(req.Name),
		Email:    string(req.Email),
		Company:  string(req.Company),
		Message:  string(req.Message),
		Honeypot: string(req.Honeypot),
	})
	if err != nil {
		return nil, err
	}

	return ContactResponse{Message: msgSent, MessageID: out.MessageID}, nil
}

func (h *HTTPEndpoint) DebugEnv(r *router.Request) (any, error) {
	out := h.uc.DebugEnv(r.Context())

	return DebugEnvResponse{Provider: out.Provider, Has: out.Has}, nil
}

func (h *HTTPEndpoint) DebugMail(r *router.Request) (any, error) {
	out := h.uc.DebugMail(r.Context())

	return DebugMailResponse{OK: out.Verified, Verify: out.Verified, Error: out.Error}, nil
}
