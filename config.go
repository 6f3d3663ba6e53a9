package behave

import (
	"log/slog"

	"github.com/TheBitDrifter/bark"
)

// Config holds global configuration for the behave package
var Config config = config{
	logger: bark.For("behave"),
}

type config struct {
	logger *slog.Logger
}

// SetLogger configures the logger used for bake progress and advisory warnings.
// A nil logger restores the package default.
func (c *config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = bark.For("behave")
	}
	c.logger = logger
}

func (c *config) Logger() *slog.Logger {
	return c.logger
}
