package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlerLevels(t *testing.T) {
	ctx := context.Background()

	for _, env := range []string{"dev", "local"} {
		h := newHandler(env, &bytes.Buffer{})
		assert.True(t, h.Enabled(ctx, slog.LevelDebug), env)
	}
	for _, env := range []string{"prod", "staging", ""} {
		h := newHandler(env, &bytes.Buffer{})
		assert.False(t, h.Enabled(ctx, slog.LevelDebug), env)
		assert.True(t, h.Enabled(ctx, slog.LevelInfo), env)
	}
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler("prod", &buf)).Info("hello", "k", "v")
	require.True(t, strings.HasPrefix(buf.String(), "{"), "prod пишет JSON: %s", buf.String())

	buf.Reset()
	slog.New(newHandler("dev", &buf)).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
}
