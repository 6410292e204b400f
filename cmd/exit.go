// SPDX-License-Identifier: Apache-2.0

package cmd

const (
	exitOK    = 0
	exitFatal = 2
)

// ExitCode maps the error returned by Execute to the process exit status.
// Every failure, from configuration errors to ambiguous mappings and
// command line misuse, is fatal.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	return exitFatal
}
