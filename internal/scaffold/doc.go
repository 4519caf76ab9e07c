// Package scaffold locates the bundled project template, checks that it can
// be read, and copies it into a new project directory without overwriting
// anything already there. All file access goes through an afero.Fs so the
// copy can run against an in-memory filesystem in tests.
package scaffold
