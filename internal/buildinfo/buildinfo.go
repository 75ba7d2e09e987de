// Package buildinfo carries build-time metadata injected at link time,
// separate from user configuration.
package buildinfo

// UnknownValue is reported when a field was not set at build time.
const UnknownValue = "unknown"

// Set via -ldflags at release build time.
var (
	version   = UnknownValue
	buildDate = UnknownValue
)

// Context is a snapshot of the build metadata.
type Context struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}

// Get returns the current build metadata, substituting UnknownValue for
// anything the build did not inject.
func Get() Context {
	ctx := Context{Version: version, BuildDate: buildDate}
	if ctx.Version == "" {
		ctx.Version = UnknownValue
	}
	if ctx.BuildDate == "" {
		ctx.BuildDate = UnknownValue
	}
	return ctx
}
