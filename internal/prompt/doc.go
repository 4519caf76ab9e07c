// Package prompt asks the user questions on a terminal and collects the
// answers by question name. It supports free-text input with a default and
// yes/no confirmation with a default.
package prompt
