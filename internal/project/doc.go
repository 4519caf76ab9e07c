// Package project creates a new project from resolved options: it checks the
// template precondition, builds the four setup tasks in their fixed order and
// runs them through the pipeline.
package project
