// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Default map center is Taipei, matching the coverage area of the seed data.
const (
	DefaultMapLat  = 25.0330
	DefaultMapLng  = 121.5654
	DefaultMapZoom = 13
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Koreality")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "koreality.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("database.sqlite.enabled", true)
	viper.SetDefault("database.sqlite.path", "koreality.db")
	viper.SetDefault("database.mysql.enabled", false)
	viper.SetDefault("database.mysql.username", "koreality")
	viper.SetDefault("database.mysql.password", "secret")
	viper.SetDefault("database.mysql.database", "koreality")
	viper.SetDefault("database.mysql.host", "localhost")
	viper.SetDefault("database.mysql.port", "3306")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)

	viper.SetDefault("map.apikey", "")
	viper.SetDefault("map.defaultlat", DefaultMapLat)
	viper.SetDefault("map.defaultlng", DefaultMapLng)
	viper.SetDefault("map.defaultzoom", DefaultMapZoom)
	viper.SetDefault("map.suppresspoi", true)
	viper.SetDefault("map.disablecontrols", true)

	viper.SetDefault("ads.rotationinterval", 5)

	viper.SetDefault("security.host", "")
	viper.SetDefault("security.sessionsecret", "")
	viper.SetDefault("security.googleauth.enabled", false)
	viper.SetDefault("security.googleauth.clientid", "")
	viper.SetDefault("security.googleauth.clientsecret", "")
	viper.SetDefault("security.googleauth.redirecturi", "/auth/callback")
}
