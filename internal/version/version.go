// Package version holds build metadata set through -ldflags.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return Version + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
}
