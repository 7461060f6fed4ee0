package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/shandysiswandi/folio/internal/pkg/config"
)

// Configuration keys shared by every profile.
const (
	KeyUseSandbox  = "mail.use_sandbox"
	KeyTo          = "mail.to"
	KeyFromName    = "mail.from_name"
	KeyFromEmail   = "mail.from_email"
	KeySendTimeout = "mail.send_timeout_seconds"

	defaultFromName    = "Portfolio"
	defaultSendTimeout = 15 * time.Second
)

// Profile names a set of SMTP settings under a configuration prefix.
type Profile struct {
	Name   string
	Prefix string
}

var (
	// ProfilePrimary is the authenticated production provider (SMTP_*).
	ProfilePrimary = Profile{Name: "primary", Prefix: "smtp"}
	// ProfileSandbox is the testing provider (SANDBOX_SMTP_*).
	ProfileSandbox = Profile{Name: "sandbox", Prefix: "sandbox.smtp"}
)

// Key returns the configuration key of field within the profile.
func (p Profile) Key(field string) string {
	return p.Prefix + "." + field
}

func (p Profile) required() []string {
	return []string{p.Key("host"), p.Key("port"), p.Key("user"), p.Key("pass")}
}

// SelectProfile returns the profile chosen by mail.use_sandbox.
func SelectProfile(cfg config.Config) Profile {
	if cfg.GetBool(KeyUseSandbox) {
		return ProfileSandbox
	}
	return ProfilePrimary
}

// ConfigError lists every required setting absent from the selected profile.
type ConfigError struct {
	Profile string
	// Missing holds environment variable names.
	Missing []string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("mail: %s profile is missing %s", e.Profile, strings.Join(e.Missing, ", "))
}

// InferSecure reports whether a port uses implicit TLS. 465 always does,
// 587 and 25 never do (they upgrade with STARTTLS), other ports keep the
// configured flag.
func InferSecure(port int, configured bool) bool {
	switch port {
	case 465:
		return true
	case 587, 25:
		return false
	default:
		return configured
	}
}

// Resolve builds the SMTP settings of the selected profile.
//
// Missing host, port, user or pass are reported together in a *ConfigError.
func Resolve(cfg config.Config) (SMTPConfig, error) {
	p := SelectProfile(cfg)

	missing := lo.Filter(p.required(), func(key string, _ int) bool {
		return strings.TrimSpace(cfg.GetString(key)) == ""
	})
	port := cfg.GetInt(p.Key("port"))
	if port <= 0 && !lo.Contains(missing, p.Key("port")) {
		missing = append(missing, p.Key("port"))
	}
	if len(missing) > 0 {
		return SMTPConfig{}, &ConfigError{Profile: p.Name, Missing: lo.Map(missing, func(key string, _ int) string {
			return config.EnvName(key)
		})}
	}

	user := strings.TrimSpace(cfg.GetString(p.Key("user")))

	fromName := strings.TrimSpace(cfg.GetString(KeyFromName))
	if fromName == "" {
		fromName = defaultFromName
	}
	fromEmail := strings.TrimSpace(cfg.GetString(KeyFromEmail))
	if fromEmail == "" {
		fromEmail = user
	}
	to := strings.TrimSpace(cfg.GetString(KeyTo))
	if to == "" {
		to = user
	}

	return SMTPConfig{
		Host:     strings.TrimSpace(cfg.GetString(p.Key("host"))),
		Port:     port,
		Secure:   InferSecure(port, cfg.GetBool(p.Key("secure"))),
		Username: user,
		Password: strings.Join(strings.Fields(cfg.GetString(p.Key("pass"))), ""),
		From:     Address{Name: fromName, Email: fromEmail},
		To:       Address{Email: to},
		Timeout:  SendTimeout(cfg),
	}, nil
}

// SendTimeout is the configured per-send budget, 15s when unset or not
// positive.
func SendTimeout(cfg config.Config) time.Duration {
	if timeout := cfg.GetSecond(KeySendTimeout); timeout > 0 {
		return timeout
	}
	return defaultSendTimeout
}

// Presence reports which mail settings are set, by environment name, for the
// selected profile. Values are never returned.
func Presence(cfg config.Config) (profile string, has map[string]bool) {
	p := SelectProfile(cfg)
	keys := []string{
		p.Key("host"), p.Key("port"), p.Key("secure"), p.Key("user"), p.Key("pass"),
		KeyTo, KeyFromName, KeyFromEmail, KeyUseSandbox,
	}

	has = make(map[string]bool, len(keys))
	for _, key := range keys {
		has[config.EnvName(key)] = strings.TrimSpace(cfg.GetString(key)) != ""
	}
	return p.Name, has
}
