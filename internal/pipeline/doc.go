// Package pipeline runs an ordered list of named tasks one at a time. Each
// task has an Enabled predicate checked just before it would run; disabled
// tasks are skipped and the run continues. The first failing task stops the
// run, and the result carries that task's title. Completed work is never
// rolled back.
package pipeline
