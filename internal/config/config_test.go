package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.uconf"))
	require.NoError(t, err)
	require.Equal(t, Defaults().Port, cfg.Port)
}

func TestLoadParsesKeyValuePairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.uconf")
	contents := "# a comment\n[section]\nport = 9100\nadmin_http = 127.0.0.1:8090\n\nlog_level = debug\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Port)
	require.Equal(t, "127.0.0.1:8090", cfg.AdminHTTPAddr)
	require.Equal(t, LogLevelDebug, cfg.LogLevel)
}

func TestLoadIgnoresMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.uconf")
	require.NoError(t, os.WriteFile(path, []byte("not a key value line\nport = 42\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Port)
}
