package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLogLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLogLevel("  WARN "))
	require.Equal(t, zerolog.InfoLevel, ParseLogLevel("nonsense"))
	require.Equal(t, zerolog.InfoLevel, ParseLogLevel(""))
}

func TestFileLoggerWritesNamedComponents(t *testing.T) {
	logpath := filepath.Join(t.TempDir(), "logs", "lexew.log")

	logger := CreateFileLogger(logpath, zerolog.InfoLevel)
	logger.Info().Msg("root says hello")
	nodeLogger := NamedLogger("node")
	nodeLogger.Info().Msg("node says ping")

	raw, err := os.ReadFile(logpath)
	require.NoError(t, err)
	out := string(raw)
	require.Contains(t, out, "root says hello")
	require.Contains(t, out, "node says ping")
	require.Contains(t, out, "node")
}
