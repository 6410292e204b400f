// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"runtime/debug"
	"sync"
)

// commitOnce returns the git commit hash the binary was built from, or
// "unknown". The vcs.revision setting is only stamped by `go build` of the
// main package, not by `go run` or test binaries.
var commitOnce = sync.OnceValue(func() string {
	const unknownCommitName = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownCommitName
	}

	for _, v := range info.Settings {
		if v.Key == "vcs.revision" {
			return v.Value
		}
	}

	return unknownCommitName
})

func version() string {
	return commitOnce()
}
