package services

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

const (
	// maxLineBytes bounds the scanner's buffer so the engine's memory
	// footprint stays independent of file size. Longer lines surface
	// as a scan failure for that file.
	maxLineBytes = 1 << 20

	// excerptRunes caps the excerpt carried on a Match.
	excerptRunes = 200
)

// opener abstracts file opening so tests can count and fake content
// reads.
type opener func(path string) (io.ReadCloser, error)

// scanContent reads the file at path line by line and stops at the
// first line the pattern matches. It answers whether the file
// qualifies, not where every occurrence is.
func scanContent(path string, pattern *regexp.Regexp, open opener) (domain.Match, bool, error) {
	f, err := open(path)
	if err != nil {
		return domain.Match{}, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if pattern.MatchString(text) {
			return domain.Match{
				Path:    path,
				Line:    line,
				Excerpt: excerpt(text),
			}, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Match{}, false, err
	}

	return domain.Match{}, false, nil
}

// excerpt trims and truncates a matching line for display.
func excerpt(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > excerptRunes {
		return string(runes[:excerptRunes]) + "..."
	}
	return text
}
