package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/folio/internal/contact/entity"
	"github.com/shandysiswandi/folio/internal/pkg/goerror"
)

func valid() entity.Submission {
	return entity.Submission{Name: "Jo", Email: "jo@x.com", Message: "hello world!"}
}

func TestValidate_Boundaries(t *testing.T) {
	uc := newTestUsecase(t, "", &stubMail{})

	tests := []struct {
		name      string
		mutate    func(*entity.Submission)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*entity.Submission) {}},
		{name: "name of two passes", mutate: func(s *entity.Submission) { s.Name = "ab" }},
		{name: "name of one fails", mutate: func(s *entity.Submission) { s.Name = "a" }, wantField: "name", wantMsg: MsgName},
		{name: "name counts runes", mutate: func(s *entity.Submission) { s.Name = "李雷" }},
		{name: "email a@b.co passes", mutate: func(s *entity.Submission) { s.Email = "a@b.co" }},
		{name: "email is case insensitive", mutate: func(s *entity.Submission) { s.Email = "A@B.CO" }},
		{name: "email without dot fails", mutate: func(s *entity.Submission) { s.Email = "a@b" }, wantField: "email", wantMsg: MsgEmail},
		{name: "email without at fails", mutate: func(s *entity.Submission) { s.Email = "abc" }, wantField: "email", wantMsg: MsgEmail},
		{name: "email with space fails", mutate: func(s *entity.Submission) { s.Email = "a b@c.co" }, wantField: "email", wantMsg: MsgEmail},
		{name: "email with no-break space fails", mutate: func(s *entity.Submission) { s.Email = "a\u00a0b@x.co" }, wantField: "email", wantMsg: MsgEmail},
		{name: "email with vertical tab fails", mutate: func(s *entity.Submission) { s.Email = "a\vb@x.co" }, wantField: "email", wantMsg: MsgEmail},
		{name: "email with ideographic space fails", mutate: func(s *entity.Submission) { s.Email = "a@x\u3000y.co" }, wantField: "email", wantMsg: MsgEmail},
		{name: "name padded with no-break spaces fails", mutate: func(s *entity.Submission) { s.Name = "\u00a0a\u00a0" }, wantField: "name", wantMsg: MsgName},
		{name: "message padded with BOM is trimmed", mutate: func(s *entity.Submission) { s.Message = "\uFEFF" + strings.Repeat("m", 9) + "\uFEFF" }, wantField: "message", wantMsg: MsgMessageTooShort},
		{name: "message of 10 passes", mutate: func(s *entity.Submission) { s.Message = strings.Repeat("m", 10) }},
		{name: "message of 9 fails", mutate: func(s *entity.Submission) { s.Message = strings.Repeat("m", 9) }, wantField: "message", wantMsg: MsgMessageTooShort},
		{name: "message of 4000 passes", mutate: func(s *entity.Submission) { s.Message = strings.Repeat("m", 4000) }},
		{name: "message of 4001 fails", mutate: func(s *entity.Submission) { s.Message = strings.Repeat("m", 4001) }, wantField: "message", wantMsg: MsgMessageTooLong},
		{name: "message counts runes", mutate: func(s *entity.Submission) { s.Message = strings.Repeat("é", 4000) }},
		{name: "company is optional", mutate: func(s *entity.Submission) { s.Company = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			in := valid()
			tt.mutate(&in)

			// Act
			err := uc.validate(in.Trimmed(), entity.ValidationModeAll)

			// Assert
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var gerr *goerror.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, 400, gerr.StatusCode())
			assert.Equal(t, tt.wantMsg, gerr.Msg())
			assert.Equal(t, map[string]string{tt.wantField: tt.wantMsg}, gerr.Fields())
		})
	}
}

func TestValidate_Honeypot(t *testing.T) {
	uc := newTestUsecase(t, "", &stubMail{})

	for _, in := range []entity.Submission{
		{Name: "Jo", Email: "jo@x.com", Message: "hello world!", Honeypot: "x"},
		{Name: "", Email: "", Message: "", Honeypot: "http://spam"},
		{Name: "Jo", Email: "jo@x.com", Message: "hello world!", Honeypot: "   "},
		{Name: "Jo", Email: "jo@x.com", Message: "hello world!", Honeypot: "true"},
	} {
		err := uc.validate(in, entity.ValidationModeAll)

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, MsgSpam, gerr.Msg())
		assert.Empty(t, gerr.Fields())
	}
}

func TestSubmission_TrimmedKeepsHoneypot(t *testing.T) {
	in := entity.Submission{Name: "  Jo ", Honeypot: " \t "}

	out := in.Trimmed()

	assert.Equal(t, "Jo", out.Name)
	assert.Equal(t, " \t ", out.Honeypot)
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u1680', '\u2000', '\u200a', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\uFEFF'} {
		assert.True(t, entity.IsSpace(r), "%U", r)
	}
	for _, r := range []rune{'a', '@', '\u0085', '\u200b'} {
		assert.False(t, entity.IsSpace(r), "%U", r)
	}
}

func TestValidate_Modes(t *testing.T) {
	uc := newTestUsecase(t, "", &stubMail{})
	in := entity.Submission{Name: "J", Email: "nope", Message: "short"}

	t.Run("all", func(t *testing.T) {
		err := uc.validate(in, entity.ValidationModeAll)

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, MsgName, gerr.Msg())
		assert.Equal(t, map[string]string{
			"name":    MsgName,
			"email":   MsgEmail,
			"message": MsgMessageTooShort,
		}, gerr.Fields())
	})

	t.Run("first", func(t *testing.T) {
		in := in
		in.Name = "Jo"

		err := uc.validate(in, entity.ValidationModeFirst)

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, MsgEmail, gerr.Msg())
		assert.Equal(t, map[string]string{"email": MsgEmail}, gerr.Fields())
	})
}

func TestParseValidationMode(t *testing.T) {
	assert.Equal(t, entity.ValidationModeFirst, entity.ParseValidationMode("first"))
	assert.Equal(t, entity.ValidationModeAll, entity.ParseValidationMode("all"))
	assert.Equal(t, entity.ValidationModeAll, entity.ParseValidationMode(""))
}
