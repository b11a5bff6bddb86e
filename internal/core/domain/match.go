package domain

// Match is a file that survived every active filter stage. Immutable
// once created; its lifetime ends when the presentation layer consumes
// it.
type Match struct {
	// Path is the matched file's path under one of the request roots.
	Path string

	// Line is the 1-based line number of the first content match.
	// Zero when no content search was requested.
	Line int `json:",omitempty"`

	// Excerpt is the matching line, trimmed and truncated. Empty when
	// no content search was requested.
	Excerpt string `json:",omitempty"`
}
