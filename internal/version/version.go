package version

// Version information for the codemark CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Full returns the version string with commit and build date appended
// when they are known.
func Full() string {
	s := Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
