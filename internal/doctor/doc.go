// Package doctor checks that the environment can run a project setup: the
// template is readable and every configured tool is on PATH at a supported
// version.
package doctor
