package loading

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Policy decides what happens to the load when a content item fails.
type Policy string

const (
	// PolicyAbort stops the load at the first failing item.
	PolicyAbort Policy = "abort"
	// PolicySkip records the failure and continues with the next item.
	PolicySkip Policy = "skip"
)

func (p *Policy) UnmarshalText(text []byte) error {
	switch Policy(text) {
	case PolicyAbort, PolicySkip:
		*p = Policy(text)
		return nil
	default:
		return fmt.Errorf("unknown load policy %q", text)
	}
}

// Settings configures a load run.
type Settings struct {
	Policy   Policy     `env:"BEHAVE_LOAD_POLICY" envDefault:"abort"`
	LogLevel slog.Level `env:"BEHAVE_LOG_LEVEL" envDefault:"INFO"`
}

// SettingsFromEnv loads settings from environment variables.
func SettingsFromEnv() (Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return settings, nil
}

// NewLogger returns a text logger writing to w at the configured level.
func (s Settings) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel}))
}
