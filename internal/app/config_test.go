package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/accessflow/accessflow/testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, "state.mn.us", cfg.EmailDomain)
	require.False(t, cfg.AutoApproveEnabled)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsAutoApproveInProduction(t *testing.T) {
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTO_APPROVE_ENABLED", "true")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestInTestModeFromGuard(t *testing.T) {
	RefreshTestMode()
	require.True(t, InTestMode())
}
