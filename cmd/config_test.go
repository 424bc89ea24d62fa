package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurant/cmd"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_NAME", "restaurant")
	t.Setenv("DB_USER", "app")
	t.Setenv("JWT_SECRET", "s3cret")
	for _, key := range []string{"HTTP_PORT", "DB_HOST", "DB_PORT", "DB_PASSWORD", "AUTH_PROVIDER", "STORE_TIMEZONE", "SWEEP_PAUSE"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.LocalAuth, cfg.AuthProvider)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 100*time.Millisecond, cfg.SweepPause)
	assert.Equal(t, "@hourly", cfg.MaintenanceSchedule)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	assert.Equal(t, "host=localhost port=5432 user=app password= dbname=restaurant sslmode=disable", cfg.DSN())
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9000")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SWEEP_PAUSE=250ms\nHTTP_PORT=7000\n"), 0o600))
	// godotenv never overrides a variable that exists, even when empty.
	require.NoError(t, os.Unsetenv("SWEEP_PAUSE"))

	cfg, err := cmd.LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.SweepPause)
	assert.Equal(t, "9000", cfg.HTTPPort, "the process environment wins over the file")
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Setenv("DB_NAME", "restaurant")
	t.Setenv("DB_USER", "app")
	t.Setenv("AUTH_PROVIDER", "firebase")
	t.Setenv("STORE_TIMEZONE", "Mars/Olympus")

	_, err := cmd.LoadConfig("")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "FIREBASE_API_KEY")
	assert.Contains(t, err.Error(), "STORE_TIMEZONE")
}

func TestConfig_UnknownAuthProvider(t *testing.T) {
	cfg := cmd.Config{DBName: "x", DBUser: "y", StoreTimezone: "UTC", AuthProvider: "ldap"}

	assert.ErrorIs(t, cfg.Validate(), errs.ErrValueIsInvalid)
}
