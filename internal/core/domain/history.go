package domain

import "time"

// SearchRecord is one completed search run, kept for the history
// subcommand. It stores the request parameters and result counts only,
// never the matches themselves.
type SearchRecord struct {
	// ID is the unique identifier for the run.
	ID string

	// Roots are the directories that were searched.
	Roots []string

	// Include is the inclusion pattern source text.
	Include string

	// Exclude is the exclusion pattern source text, empty if none.
	Exclude string

	// Content is the content pattern source text, empty if none.
	Content string

	// IncludeHidden records the hidden-entry policy used.
	IncludeHidden bool

	// Matches is the number of files emitted.
	Matches int

	// Errors is the number of traversal errors reported.
	Errors int

	// StartedAt is when the search began.
	StartedAt time.Time

	// Duration is how long the search took.
	Duration time.Duration
}
