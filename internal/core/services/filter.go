package services

import "regexp"

// matchesName reports whether a file's base name passes the name
// filter stage. Both patterns match anywhere in the name, not the
// whole of it. When the exclusion pattern matches, the name is
// rejected regardless of the inclusion result.
func matchesName(name string, include, exclude *regexp.Regexp) bool {
	if exclude != nil && exclude.MatchString(name) {
		return false
	}
	return include.MatchString(name)
}
