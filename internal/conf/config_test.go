package conf

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	settings := &Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = "koreality.db"
	settings.Ads.RotationInterval = 5
	return settings
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsDualBackends(t *testing.T) {
	settings := validSettings()
	settings.Database.MySQL.Enabled = true

	err := ValidateSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one database backend")
}

func TestValidateSettingsRejectsNoBackend(t *testing.T) {
	settings := validSettings()
	settings.Database.SQLite.Enabled = false

	require.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsRequiresSQLitePath(t *testing.T) {
	settings := validSettings()
	settings.Database.SQLite.Path = ""

	require.Error(t, ValidateSettings(settings))
}

func TestValidateSettingsRequiresPositiveAdInterval(t *testing.T) {
	settings := validSettings()
	settings.Ads.RotationInterval = 0

	require.Error(t, ValidateSettings(settings))
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("KOREALITY_MAP_APIKEY", "env-key")
	t.Setenv("KOREALITY_DATABASE_SQLITE_PATH", t.TempDir()+"/env.db")
	t.Setenv("KOREALITY_SECURITY_GOOGLEAUTH_CLIENTID", "env-client")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", settings.Map.APIKey)
	assert.Contains(t, settings.Database.SQLite.Path, "env.db")
	assert.Equal(t, "env-client", settings.Security.GoogleAuth.ClientID)
}

func TestValidateSettingsGoogleAuthCredentials(t *testing.T) {
	settings := validSettings()
	settings.Security.GoogleAuth.Enabled = true

	require.Error(t, ValidateSettings(settings))

	settings.Security.GoogleAuth.ClientID = "client-id"
	settings.Security.GoogleAuth.ClientSecret = "client-secret"
	require.NoError(t, ValidateSettings(settings))
}
