// Package conf handles loading and validating application configuration.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Settings is the root configuration for the Koreality service.
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string    // name of the running node
		Log  LogConfig // logging configuration
	}

	Database  DatabaseSettings  // relational store settings
	WebServer WebServerSettings // HTTP API settings
	Map       MapSettings       // map widget settings
	Ads       AdsSettings       // advertisement rotation settings
	Security  SecuritySettings  // OAuth sign-in settings
}

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled  bool         // true to enable this log
	Path     string       // path to log file
	Rotation RotationType // rotation type
	MaxSize  int64        // max size in bytes for RotationSize
}

// RotationType defines the log rotation type
type RotationType string

const (
	RotationDaily  RotationType = "daily"
	RotationWeekly RotationType = "weekly"
	RotationSize   RotationType = "size"
)

// DatabaseSettings selects and configures the backing store.
type DatabaseSettings struct {
	SQLite struct {
		Enabled bool   // true to enable SQLite
		Path    string // path to SQLite database file
	}
	MySQL struct {
		Enabled  bool   // true to enable MySQL
		Username string // MySQL username
		Password string // MySQL password
		Database string // MySQL database name
		Host     string // MySQL host
		Port     string // MySQL port
	}
}

// WebServerSettings configures the JSON API server.
type WebServerSettings struct {
	Enabled bool   // true to enable the HTTP server
	Port    string // port to listen on
	Debug   bool   // true to enable debug request logging
}

// MapSettings configures the client-side map widget served by the API.
type MapSettings struct {
	APIKey          string  // map widget API key, required at startup
	DefaultLat      float64 // default map center latitude
	DefaultLng      float64 // default map center longitude
	DefaultZoom     int     // default map zoom level
	SuppressPOI     bool    // hide points-of-interest labels
	DisableControls bool    // hide map-type, street view and fullscreen chrome
}

// AdsSettings configures the advertisement carousel.
type AdsSettings struct {
	RotationInterval int // seconds between automatic ad changes
}

// SecuritySettings configures OAuth sign-in.
type SecuritySettings struct {
	Host          string // public host used to build OAuth redirect URLs
	SessionSecret string // secret for session cookie signing
	GoogleAuth    struct {
		Enabled      bool   // true to enable Google OAuth
		ClientID     string // OAuth client id
		ClientSecret string // OAuth client secret
		RedirectURI  string // OAuth callback URL
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.config/koreality")

	// Environment overrides, e.g. KOREALITY_MAP_APIKEY for map.apikey
	viper.SetEnvPrefix("koreality")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file, defaults and environment carry the configuration
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// ValidateSettings checks for required values and consistent store selection.
func ValidateSettings(settings *Settings) error {
	if settings.Database.SQLite.Enabled && settings.Database.MySQL.Enabled {
		return errors.New("only one database backend may be enabled at a time")
	}
	if !settings.Database.SQLite.Enabled && !settings.Database.MySQL.Enabled {
		return errors.New("no database backend enabled")
	}
	if settings.Database.SQLite.Enabled && settings.Database.SQLite.Path == "" {
		return errors.New("sqlite path is required when sqlite is enabled")
	}
	if settings.Ads.RotationInterval <= 0 {
		return errors.New("ads rotation interval must be positive")
	}
	if settings.Security.GoogleAuth.Enabled {
		if settings.Security.GoogleAuth.ClientID == "" || settings.Security.GoogleAuth.ClientSecret == "" {
			return errors.New("google auth requires client id and secret")
		}
	}
	return nil
}

// Setting returns the current settings instance, loading it on first use.
func Setting() *Settings {
	settingsMutex.RLock()
	if settingsInstance != nil {
		defer settingsMutex.RUnlock()
		return settingsInstance
	}
	settingsMutex.RUnlock()

	if _, err := Load(); err != nil {
		return nil
	}

	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
