package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, "~", cfg.ServerRoot)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	content := `server_url: http://jupyter.local:8080
server_root: /home/alice
token: sekrit
timeout: 30s
serve:
  port: 9001
  watch: true
ui:
  refresh_interval: 5s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kernelnav.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://jupyter.local:8080", cfg.ServerURL)
	assert.Equal(t, "/home/alice", cfg.ServerRoot)
	assert.Equal(t, "sekrit", cfg.Token)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 9001, cfg.GetServeConfig().Port)
	assert.Equal(t, 5*time.Second, cfg.GetUIConfig().RefreshInterval)
	assert.Equal(t, filepath.Join(dir, "kernelnav.yaml"), GetConfigFileUsed())
}

func TestLoadConfigUpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "kernelnav.yml"), []byte("server_root: /data/ws\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/ws", cfg.ServerRoot)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kernelnav.yaml"), []byte("token: from-file\n"), 0o644))
	chdir(t, dir)
	t.Setenv("KERNELNAV_TOKEN", "from-env")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("KERNELNAV_SERVER_URL", "http://env:1111")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server-url", "", "")
	require.NoError(t, flags.Set("server-url", "http://flag:2222"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2222", cfg.ServerURL)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server-url", "http://flag-default:3333", "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing server url",
			mutate:  func(c *Config) { c.ServerURL = "" },
			wantErr: "server_url is required",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.ServerURL = "ftp://host" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "relative server root",
			mutate:  func(c *Config) { c.ServerRoot = "work/ws" },
			wantErr: "must be absolute or start with ~",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: "timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ServerURL:  DefaultServerURL,
				ServerRoot: DefaultServerRoot,
				Timeout:    DefaultTimeout,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir is a Go <1.24 stand-in for t.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
