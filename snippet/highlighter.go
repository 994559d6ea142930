package snippet

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Highlighter sanitizes a snippet of text and wraps occurrences of a
// fixed set of search terms in <em> tags. Sanitization runs first and
// strips every tag from the input, including any HTML that survived
// paragraph extraction from a crawled page, so the <em> tags in the
// final output are always the highlighter's own.
type Highlighter struct {
	pattern *regexp.Regexp
	policy  *sync.Pool
}

// NewHighlighter returns a Highlighter for the given whitespace
// separated search terms.
func NewHighlighter(searchTerms string) *Highlighter {
	terms := strings.Fields(searchTerms)

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}

	var pattern *regexp.Regexp
	if len(quoted) > 0 {
		pattern = regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	}

	return &Highlighter{
		pattern: pattern,
		policy: &sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// Highlight sanitizes input and wraps every case-insensitive,
// whole-word occurrence of the highlighter's search terms in <em>
// tags, preserving the original casing of the matched text.
func (h *Highlighter) Highlight(input string) string {
	policy := h.policy.Get().(*bluemonday.Policy)
	clean := policy.Sanitize(input)
	h.policy.Put(policy)

	if h.pattern == nil {
		return clean
	}

	return h.pattern.ReplaceAllString(clean, "<em>$1</em>")
}
