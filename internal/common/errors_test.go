package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		name     string
	}{
		{name: "validation", err: &ValidationError{Field: "spin", Value: "37", Reason: "out of range"}, sentinel: ErrValidation},
		{name: "invalid group", err: &InvalidGroupError{Name: "Red", Reason: "name already used"}, sentinel: ErrValidation},
		{name: "invalid range", err: &InvalidRangeError{Center: 0, Count: 19}, sentinel: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.True(t, IsUserInputError(wrapped))
		})
	}

	assert.False(t, IsUserInputError(ErrNotFound))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `invalid spin "abc": not an integer`,
		(&ValidationError{Field: "spin", Value: "abc", Reason: "not an integer"}).Error())
	assert.Equal(t, "invalid group name: must not be empty",
		(&ValidationError{Field: "group name", Reason: "must not be empty"}).Error())
	assert.Equal(t, "neighbour count 19 around 0 covers 39 pockets, wheel has 37",
		(&InvalidRangeError{Center: 0, Count: 19}).Error())
	assert.Equal(t, "invalid group: name must not be empty",
		(&InvalidGroupError{Reason: "name must not be empty"}).Error())
}

func TestUserError(t *testing.T) {
	base := errors.New("disk full")
	err := NewUserError("could not save spin", base)

	assert.Equal(t, "could not save spin: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelDebug, "json"))
	LogDebug("spin recorded", Fields{"number": 17})
	assert.Contains(t, buf.String(), `"number":17`)

	buf.Reset()
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "console"))
	LogDebug("hidden", nil)
	LogError(errors.New("boom"), "analysis failed", Fields{"dealer": "A"})
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "error=boom")

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
