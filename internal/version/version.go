// Package version holds the build identity of the sentinel binary.
package version

import "fmt"

// Version is stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/example/sentinel/internal/version.Version=$(git describe --tags)"
//
// The fallback marks unstamped local builds.
var Version = "dev"

// Commit is the stamped git revision, empty for local builds.
var Commit = ""

// String renders the version line shown by "sentinel --version".
func String() string {
	if Commit == "" {
		return fmt.Sprintf("sentinel %s", Version)
	}
	return fmt.Sprintf("sentinel %s (%s)", Version, shortCommit())
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
