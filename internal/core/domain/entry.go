package domain

import "strings"

// Entry is a transient record of one filesystem object visited during
// traversal. Directories pass through the traverser for descent only;
// they are never emitted as matches.
type Entry struct {
	// Path is the entry's path, rooted at one of the request's roots.
	Path string

	// Name is the base name component of Path.
	Name string

	// Dir reports whether the entry is a directory. Symlinks are not
	// followed, so a symlink to a directory has Dir == false.
	Dir bool

	// Regular reports whether the entry is a regular file. Only
	// regular entries are eligible as matches; symlinks, sockets and
	// devices are neither descended into nor emitted.
	Regular bool

	// Hidden reports whether the name marks the entry as hidden.
	Hidden bool
}

// IsHidden reports whether a base name marks an entry as hidden by the
// leading-dot convention. The convention is applied on all platforms.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
