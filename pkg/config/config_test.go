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

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "apicall.yaml", "method: POST\nurl: https://from-file\nfile_type: image/png\n")
	envFile := writeFile(t, dir, ".env", "TOKEN=from-dotenv\nURL=https://from-dotenv\nMETHOD=DELETE\nQUERY=b=2\n")
	t.Setenv("CFGTEST_FILE_TYPE", "application/pdf")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "", "")
	require.NoError(t, flags.Parse([]string{"--url=https://from-flag"}))

	cfg, err := New(
		WithDefaults(map[string]interface{}{"method": "GET", "query": "a=1"}),
		WithFile(file),
		WithEnv("CFGTEST"),
		WithPFlags(flags),
		WithDotEnv(envFile),
	)
	require.NoError(t, err)

	assert.Equal(t, "https://from-flag", cfg.GetString("url"))
	assert.Equal(t, "POST", cfg.GetString("method"))
	assert.Equal(t, "application/pdf", cfg.GetString("file_type"))
	assert.Equal(t, "b=2", cfg.GetString("query"))
	assert.Equal(t, "from-dotenv", cfg.GetString("token"))
}

func TestDotEnvLosesToFlags(t *testing.T) {
	envFile := writeFile(t, t.TempDir(), ".env", "TOKEN=stale\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("token", "", "")
	require.NoError(t, flags.Parse([]string{"--token=fresh"}))

	cfg, err := New(WithPFlags(flags), WithDotEnv(envFile))
	require.NoError(t, err)
	assert.Equal(t, "fresh", cfg.GetString("token"))

	// An unset flag does not shadow the dotenv value.
	flags = pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("token", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err = New(WithPFlags(flags), WithDotEnv(envFile))
	require.NoError(t, err)
	assert.Equal(t, "stale", cfg.GetString("token"))
}

func TestMissingFiles(t *testing.T) {
	_, err := New(WithDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, err)

	_, err = New(WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestGettersAndValidation(t *testing.T) {
	cfg, err := New(WithDefaults(map[string]interface{}{"timeout": "5s", "url": ""}))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.GetDurationD("timeout", time.Second))
	assert.Equal(t, time.Minute, cfg.GetDurationD("other", time.Minute))
	assert.Equal(t, "GET", cfg.GetStringD("method", "GET"))
	assert.EqualError(t, cfg.ValidateRequired("url", "method"), "missing required keys: url, method")
}

func TestMaskedSettings(t *testing.T) {
	cfg, err := New(
		WithDefaults(map[string]interface{}{"token": "secret", "url": "https://x"}),
		WithSensitiveKeys("Token"),
	)
	require.NoError(t, err)

	masked := cfg.MaskedSettings()
	assert.Equal(t, "***REDACTED***", masked["token"])
	assert.Equal(t, "https://x", masked["url"])
}
