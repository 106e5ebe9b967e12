// Package version reports the sha2sum release and the build it came from.
package version

import (
	"fmt"
	"runtime"
)

const (
	Major = 0
	Minor = 1
	Patch = 0
)

// gitCommit is set by the linker, e.g.
//
//	go build -ldflags "-X sha2sum.org/sha2sum/version.gitCommit=$(git rev-parse HEAD)"
var gitCommit string

// format renders "<major>.<minor>.<patch>[+<commit>]", keeping the first
// eight characters of a full commit id.
func format(major, minor, patch int, commit string) string {
	v := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if len(commit) >= 8 {
		v += "+" + commit[:8]
	}
	return v
}

// GetVersion returns the release, like "0.1.0" or "0.1.0+1a2b3c4d".
func GetVersion() string {
	return format(Major, Minor, Patch, gitCommit)
}

// Detail is the line printed by "sha2sum version".
func Detail() string {
	return fmt.Sprintf("sha2sum version %s %s %s/%s", GetVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
