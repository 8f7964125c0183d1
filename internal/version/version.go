// Package version exposes build-time version information.
package version

// Set at build time via -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String renders the full version line for --version output.
func String() string {
	return Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
