// Package driving defines the interfaces through which the outside
// world drives the core: the CLI and TUI talk to services through
// these, never through concrete service types.
package driving
