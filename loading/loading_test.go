package loading

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/TheBitDrifter/behave"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type none struct{}

// overContribute fails the way a content item with two exclusive contributors does
func overContribute() error {
	aspect := behave.NewAspect[behave.Exclusive[int, none], int, none]("hardness", nil)
	if err := aspect.ContributeConstant(1); err != nil {
		return err
	}
	return aspect.ContributeConstant(2)
}

func TestSettingsFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		settings, err := SettingsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, PolicyAbort, settings.Policy)
		assert.Equal(t, slog.LevelInfo, settings.LogLevel)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("BEHAVE_LOAD_POLICY", "skip")
		t.Setenv("BEHAVE_LOG_LEVEL", "DEBUG")

		settings, err := SettingsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, PolicySkip, settings.Policy)
		assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	})

	t.Run("invalid policy", func(t *testing.T) {
		t.Setenv("BEHAVE_LOAD_POLICY", "retry")

		_, err := SettingsFromEnv()
		assert.Error(t, err)
	})
}

func TestLoadSkipPolicy(t *testing.T) {
	var logs bytes.Buffer
	settings := Settings{Policy: PolicySkip}
	ctx := NewContext(settings, settings.NewLogger(&logs))

	require.NoError(t, ctx.Load("stone", func() error { return nil }))
	require.NoError(t, ctx.Load("torch", overContribute))
	require.NoError(t, ctx.Load("water", func() error { return errors.New("missing texture") }))
	require.NoError(t, ctx.Load("sand", func() error { return nil }))

	report := ctx.Report()
	assert.False(t, report.Aborted)
	require.Len(t, report.Entries, 4)
	assert.Equal(t, StatusLoaded, report.Entries[0].Status)
	assert.Equal(t, StatusSkipped, report.Entries[1].Status)
	assert.Equal(t, KindConfiguration, report.Entries[1].Kind)
	assert.Equal(t, KindOther, report.Entries[2].Kind)
	assert.Equal(t, StatusLoaded, report.Entries[3].Status)
	assert.Len(t, report.Failures(), 2)

	assert.Contains(t, logs.String(), "item=torch")
	assert.Contains(t, logs.String(), ctx.ID().String())
}

func TestLoadAbortPolicy(t *testing.T) {
	ctx := NewContext(Settings{Policy: PolicyAbort}, nil)

	require.NoError(t, ctx.Load("stone", func() error { return nil }))

	err := ctx.Load("torch", overContribute)
	require.Error(t, err)
	assert.True(t, behave.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "torch")
	assert.True(t, ctx.Aborted())

	err = ctx.Load("sand", func() error { return nil })
	assert.ErrorIs(t, err, ErrAborted)

	report := ctx.Report()
	assert.True(t, report.Aborted)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, StatusFailed, report.Entries[1].Status)
}

func TestLoadRecoversPanics(t *testing.T) {
	ctx := NewContext(Settings{Policy: PolicySkip}, nil)

	require.NoError(t, ctx.Load("glass", func() error { panic("shattered") }))
	require.NoError(t, ctx.Load("ice", func() error { panic(behave.BakedError{Op: "bake"}) }))

	entries := ctx.Report().Entries
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Error, "shattered")
	assert.Equal(t, KindOther, entries[0].Kind)
	assert.Equal(t, KindConfiguration, entries[1].Kind)
}

func TestReportYAML(t *testing.T) {
	ctx := NewContext(Settings{Policy: PolicySkip}, nil)
	require.NoError(t, ctx.Load("stone", func() error { return nil }))
	require.NoError(t, ctx.Load("torch", overContribute))

	var buf bytes.Buffer
	require.NoError(t, ctx.Report().WriteYAML(&buf))
	assert.Contains(t, buf.String(), "policy: skip")
	assert.Contains(t, buf.String(), "status: skipped")

	decoded, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, ctx.Report(), decoded)

	_, err = uuid.Parse(decoded.Run)
	assert.NoError(t, err)
}
