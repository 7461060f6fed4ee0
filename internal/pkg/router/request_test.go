package router_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shandysiswandi/folio/internal/pkg/router"
)

type payload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func TestRequest_DecodeBody(t *testing.T) {
	r := newRouter(t, "")
	r.POST("/echo", func(req *router.Request) (any, error) {
		var p payload
		if err := req.DecodeBody(&p); err != nil {
			return nil, err
		}
		return p, nil
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
		wantBody    string
	}{
		{
			name:        "json with unknown fields",
			contentType: "application/json",
			body:        `{"name":"Ada","message":"hello","extra":1}`,
			wantCode:    http.StatusOK,
			wantBody:    `{"ok":true,"name":"Ada","message":"hello"}`,
		},
		{
			name:        "form",
			contentType: "application/x-www-form-urlencoded",
			body:        "name=Ada&message=hi+there",
			wantCode:    http.StatusOK,
			wantBody:    `{"ok":true,"name":"Ada","message":"hi there"}`,
		},
		{
			name:     "empty body",
			wantCode: http.StatusOK,
			wantBody: `{"ok":true,"name":"","message":""}`,
		},
		{
			name:        "malformed",
			contentType: "application/json",
			body:        `{"name":`,
			wantCode:    http.StatusBadRequest,
			wantBody:    `{"ok":false,"message":"Invalid request body."}`,
		},
		{
			name:        "trailing data",
			contentType: "application/json",
			body:        `{"name":"a"}{}`,
			wantCode:    http.StatusBadRequest,
			wantBody:    `{"ok":false,"message":"Invalid request body."}`,
		},
		{
			name:        "too large",
			contentType: "application/json",
			body:        `{"message":"` + strings.Repeat("x", 70<<10) + `"}`,
			wantCode:    http.StatusBadRequest,
			wantBody:    `{"ok":false,"message":"Request body too large."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodPost, "/echo", tt.body, "Content-Type", tt.contentType)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
