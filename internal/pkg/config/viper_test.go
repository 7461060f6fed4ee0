package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SMTP_HOST", EnvName("smtp.host"))
	assert.Equal(t, "SANDBOX_SMTP_PASS", EnvName("sandbox.smtp.pass"))
	assert.Equal(t, "MAIL_FROM_NAME", EnvName("mail.from_name"))
	assert.Equal(t, "APP_SERVER_HTTP_READ_TIMEOUT", EnvName("app.server.http.read-timeout"))
}

func TestNewViper_EnvironmentOverridesDefaults(t *testing.T) {
	// Arrange
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_SEND_TIMEOUT_SECONDS", "7")

	// Act
	cfg, err := NewViper(Options{Defaults: map[string]any{
		"smtp.host":                 "localhost",
		"smtp.port":                 587,
		"mail.send_timeout_seconds": 15,
	}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", cfg.GetString("smtp.host"))
	assert.Equal(t, 587, cfg.GetInt("smtp.port"))
	assert.Equal(t, 7*time.Second, cfg.GetSecond("mail.send_timeout_seconds"))
	assert.NoError(t, cfg.Close())
}

func TestNewViper_MissingFileFallsBackToEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "4000")

	// Act
	cfg, err := NewViper(Options{File: filepath.Join(t.TempDir(), "missing.yaml")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.GetInt("port"))
}

func TestNewViper_ReadsFileAndDotEnv(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("mail:\n  from_name: Folio\nsmtp:\n  port: 465\n"), 0o600))

	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("FOLIO_TEST_DOTENV_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FOLIO_TEST_DOTENV_KEY") })

	// Act
	cfg, err := NewViper(Options{File: file, DotEnv: []string{dotenv, filepath.Join(dir, ".env.local")}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Folio", cfg.GetString("mail.from_name"))
	assert.Equal(t, 465, cfg.GetInt("smtp.port"))
	assert.Equal(t, "from-dotenv", cfg.GetString("folio_test_dotenv_key"))
}

func TestNewViperFromBytes(t *testing.T) {
	t.Run("requires a config type", func(t *testing.T) {
		_, err := NewViperFromBytes(" ", nil, nil)
		assert.Error(t, err)
	})

	t.Run("reads yaml and cleans arrays", func(t *testing.T) {
		cfg, err := NewViperFromBytes("yaml", []byte("app:\n  server:\n    cors: \" https://a.dev, ,https://b.dev \"\ninstrument:\n  trace_sample_ratio: 0.25\n  enabled: true\n"), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.GetArray("app.server.cors"))
		assert.Empty(t, cfg.GetArray("app.maintenance.endpoints"))
		assert.InDelta(t, 0.25, cfg.GetFloat64("instrument.trace_sample_ratio"), 0.0001)
		assert.True(t, cfg.GetBool("instrument.enabled"))
	})
}
