// Package version holds build information embedded with --ldflags.
package version

var (
	// Version is the main version at the moment.
	// Versioning should follow the SemVer guidelines
	// https://semver.org/
	Version = "v0.1.0"

	// Commit is the git commit the binary was built from.
	Commit string

	// Branch is the git branch the binary was built from.
	Branch string

	// BuildTime is the build timestamp.
	BuildTime string
)
