// Package shell runs external commands for the setup tasks. A run never
// returns a Go error: the outcome is a Result whose Failed flag tells the
// caller whether the command succeeded, with the exit code, the start error,
// and the captured output as detail.
package shell
