// Package logging provides the log collaborator injected into every tiler component.
//
// There is no package-level logger. Callers build a Logger (usually a Sink) at
// startup, pass it down explicitly, and close it when the run finishes.
package logging
