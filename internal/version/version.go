// Package version provides build version information for the agent.
// This is a separate package to avoid import cycles between the CLI and
// the background components that stamp the runtime log file name.
package version

// Version is the build version string, set by ldflags during build.
// The runtime log file name embeds this value (runtime_<Version>.log),
// so each released build writes its own log set.
var Version = "0.4.1"

// BuildTime is the build timestamp, set by ldflags during build.
var BuildTime = "unknown"
