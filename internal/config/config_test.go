package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at temp dirs and clears the
// memo variables so host settings do not leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".memo", "memos.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadDefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".memo", "config.yaml"), "db_path: /tmp/from-file.db\nlog_level: info\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "memo.yaml")
	writeFile(t, path, "db_path: /tmp/from-file.db\nlog_format: json\n")
	t.Setenv(EnvDB, "/tmp/from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigFromEnvVar(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "memo.yaml")
	writeFile(t, path, "log_level: debug\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeFile(t, filepath.Join(wd, ".env"), "MEMO_DB=/tmp/from-dotenv.db\n")
	t.Cleanup(func() { os.Unsetenv(EnvDB) })
	// godotenv does not override variables that are already set
	require.NoError(t, os.Unsetenv(EnvDB))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.DBPath)
}

func TestLoadBadYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "memo.yaml")
	writeFile(t, path, "db_path: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"debug json", func(c *Config) { c.LogLevel = "debug"; c.LogFormat = "json" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
