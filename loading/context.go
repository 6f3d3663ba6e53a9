// Package loading runs content setup steps and attributes their failures to content items.
package loading

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/behave"
	"github.com/google/uuid"
)

// ErrAborted is returned by Load once an earlier item aborted the run.
var ErrAborted = errors.New("load aborted by an earlier failure")

type Status string

const (
	StatusLoaded  Status = "loaded"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindOther         Kind = "other"
)

// Context tracks one load run. It is not safe for concurrent use, matching the
// single threaded registration phase it drives.
type Context struct {
	id       uuid.UUID
	settings Settings
	logger   *slog.Logger
	entries  []Entry
	aborted  bool
}

func NewContext(settings Settings, logger *slog.Logger) *Context {
	if logger == nil {
		logger = bark.For("loading")
	}
	id := uuid.New()
	return &Context{
		id:       id,
		settings: settings,
		logger:   logger.With("run", id.String()),
	}
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

func (c *Context) Aborted() bool {
	return c.aborted
}

// Load runs step for item. A panicking step counts as a failure.
// Under PolicySkip failures are recorded and nil is returned; under PolicyAbort the
// failure is returned and the context refuses every later item.
func (c *Context) Load(item string, step func() error) error {
	if c.aborted {
		return fmt.Errorf("%s: %w", item, ErrAborted)
	}

	err := run(step)
	if err == nil {
		c.entries = append(c.entries, Entry{Item: item, Status: StatusLoaded})
		return nil
	}

	kind := KindOther
	if behave.IsConfigurationError(err) {
		kind = KindConfiguration
	}

	if c.settings.Policy == PolicySkip {
		c.entries = append(c.entries, Entry{Item: item, Status: StatusSkipped, Kind: kind, Error: err.Error()})
		c.logger.Warn("skipping content item", "item", item, "kind", kind, "err", err)
		return nil
	}

	c.aborted = true
	c.entries = append(c.entries, Entry{Item: item, Status: StatusFailed, Kind: kind, Error: err.Error()})
	c.logger.Error("content item failed, aborting load", "item", item, "kind", kind, "err", err)
	return fmt.Errorf("load %s: %w", item, err)
}

func run(step func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step()
}

// Report returns the entries recorded so far in load order.
func (c *Context) Report() Report {
	return Report{
		Run:     c.id.String(),
		Policy:  c.settings.Policy,
		Aborted: c.aborted,
		Entries: append([]Entry(nil), c.entries...),
	}
}
