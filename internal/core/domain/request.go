package domain

import (
	"fmt"
	"os"
	"regexp"
)

// SearchRequest is an immutable description of one file search.
// Constructed once by NewSearchRequest, never mutated, shared
// read-only across the whole search.
//
// All patterns are Go regular expressions evaluated against the file's
// base name (never the full path) in search-anywhere mode: a match at
// any position in the name counts. The content pattern is likewise a
// regular expression, applied per line of the candidate file.
type SearchRequest struct {
	// Roots are the directories traversal starts from, walked in the
	// order given. Each is validated to exist and be a directory.
	Roots []string

	// Include is the compiled name-inclusion pattern. Required.
	Include *regexp.Regexp

	// Exclude is the compiled name-exclusion pattern. When it matches
	// a name, the entry is rejected regardless of Include. Nil when no
	// exclusion was requested.
	Exclude *regexp.Regexp

	// IncludeHidden controls whether hidden entries are visited. When
	// false, a hidden directory's entire subtree is pruned.
	IncludeHidden bool

	// Content is the compiled content pattern. Nil when the content
	// stage is a pass-through.
	Content *regexp.Regexp
}

// NewSearchRequest validates and compiles a search request. All
// validation failures surface here, before traversal begins, wrapping
// ErrInvalidInput; the filter stages never see a malformed pattern.
func NewSearchRequest(roots []string, include, exclude, content string, includeHidden bool) (*SearchRequest, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: at least one root directory is required", ErrInvalidInput)
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%w: root %q: %v", ErrInvalidInput, root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: root %q is not a directory", ErrInvalidInput, root)
		}
	}

	if include == "" {
		return nil, fmt.Errorf("%w: an inclusion pattern is required", ErrInvalidInput)
	}
	inc, err := regexp.Compile(include)
	if err != nil {
		return nil, fmt.Errorf("%w: inclusion pattern %q: %v", ErrInvalidInput, include, err)
	}

	req := &SearchRequest{
		Roots:         roots,
		Include:       inc,
		IncludeHidden: includeHidden,
	}

	if exclude != "" {
		exc, err := regexp.Compile(exclude)
		if err != nil {
			return nil, fmt.Errorf("%w: exclusion pattern %q: %v", ErrInvalidInput, exclude, err)
		}
		req.Exclude = exc
	}

	if content != "" {
		con, err := regexp.Compile(content)
		if err != nil {
			return nil, fmt.Errorf("%w: content pattern %q: %v", ErrInvalidInput, content, err)
		}
		req.Content = con
	}

	return req, nil
}
