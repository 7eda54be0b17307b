package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOODBRIDGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Vous", cfg.Profile.Name)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	require.Equal(t, "Europe/Paris", cfg.UI.Timezone)
	require.True(t, cfg.Seed.Enabled)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("FOODBRIDGE_CONFIG", path)

	want := Config{
		Profile: ProfileConfig{Name: "Boulangerie Martin", OrgType: "Commerce", Verified: true},
		UI:      UIConfig{TimeFormat: "15:04", CurrencySymbol: "€", Timezone: "Europe/Paris"},
		Seed:    SeedConfig{Enabled: false},
	}
	require.NoError(t, Save(want))

	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FOODBRIDGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("FOODBRIDGE_PROFILE_NAME", "Ferme Dupont")
	t.Setenv("FOODBRIDGE_SEED_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Ferme Dupont", cfg.Profile.Name)
	require.False(t, cfg.Seed.Enabled)
}
