package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLogger_MasksAndAddsContext(t *testing.T) {
	// Arrange
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{
		ServiceName: "folio",
		MaskFields:  []string{"SMTP_PASS", "authorization"},
	}, nil))
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "mail configured",
		"smtp_pass", "secret",
		"headers", map[string]string{"Authorization": "Bearer x", "Accept": "*/*"},
		"body", `{"smtp_pass":"secret","name":"Jo"}`,
	)

	// Assert
	line := decodeLine(t, buf)
	assert.Equal(t, "mail configured", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "folio", line["service"])
	assert.Equal(t, "***", line["smtp_pass"])
	assert.Equal(t, map[string]any{"Authorization": "***", "Accept": "*/*"}, line["headers"])
	assert.JSONEq(t, `{"smtp_pass":"***","name":"Jo"}`, line["body"].(string))
	assert.Contains(t, line, "ts")
}

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{LogLevel: "warn"}, nil))

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestMaskValue(t *testing.T) {
	keys := MaskKeys([]string{" Password ", ""})

	got := MaskValue(map[string]any{
		"password": "x",
		"nested":   []any{map[string]any{"PASSWORD": "y", "ok": 1}},
	}, keys)

	assert.Equal(t, map[string]any{
		"password": "***",
		"nested":   []any{map[string]any{"PASSWORD": "***", "ok": 1}},
	}, got)
	assert.Len(t, keys, 1)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	buf := &bytes.Buffer{}

	ins, err := New(context.Background(), &Config{ServiceName: "folio", LogOutput: buf})

	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("t"))
	assert.NotNil(t, ins.Meter("m"))
	assert.NoError(t, ins.Shutdown(context.Background()))
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}
