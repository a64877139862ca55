// Package settings carries build metadata and the options of one CLI run.
package settings

// CliBinaryName is the binary name. It also names the config and state
// directories.
const CliBinaryName = "jsonedit"

// VersionInformation is set at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the resolved options of a single invocation: flags layered over
// the config file.
type Run struct {
	MinLogLevel int8
	LogFile     string
	ConfigFile  string
	NoColor     bool
	// From is the input format name for imports.
	From    string
	Lenient bool
	// Indent is the pretty-print unit.
	Indent   string
	Minified bool
	Theme    string
	// SessionPath is the session database. Empty disables persistence.
	SessionPath string
}

// NewCliParams returns the defaults used before flags and config are applied.
func NewCliParams() *Run {
	return &Run{
		Indent: "  ",
	}
}
