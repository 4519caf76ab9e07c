// Package options turns raw command-line arguments into a fully resolved
// Options value. Resolution has three steps, always in this order: Parse reads
// flags, Prompt fills in what the user was not asked on the command line, and
// Resolve derives the target and template directories exactly once.
package options
