// Package cli defines the cobra command tree for the create-farm-app binary.
// The root command scaffolds a project; it hands its raw arguments to the
// options package so flag handling lives in one place, and delegates the work
// to the project package. This package only wires collaborators together and
// reports the final status.
package cli
