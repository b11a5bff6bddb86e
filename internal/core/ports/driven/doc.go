// Package driven defines the interfaces the core depends on.
//
// Driven ports are implemented by adapters on the infrastructure side
// of the hexagon: the filesystem walker, the change notifier and the
// history store. Services consume these interfaces and never import
// the adapters directly.
package driven
