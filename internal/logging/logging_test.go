package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfmyers9/spindle/pkg/spotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ spotify.Logger = SpotifyLogger{}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSpotifyLogger(t *testing.T) {
	var buf bytes.Buffer
	l := SpotifyLogger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	l.Debugf("spotify: calling %s %s", "GET", "/me")

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "spotify: calling GET /me")
}

func TestSpotifyLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := SpotifyLogger{Logger: zerolog.New(&buf).Level(zerolog.InfoLevel)}

	l.Debugf("hidden")

	assert.Empty(t, buf.String())
}

func TestNew_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spindle.log")

	logger := New(path, "warn")
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "dropped"))
	assert.Contains(t, string(data), "kept")
}
