package snippet_test

import (
	"strings"

	check "gopkg.in/check.v1"

	"github.com/nicwatson/javasandcrawer/snippet"
)

var _ = check.Suite(new(SummarizerTestSuite))

type SummarizerTestSuite struct{}

func (s *SummarizerTestSuite) TestSummaryKeepsOnlyMatchingSentences(c *check.C) {
	sum := snippet.NewSummarizer("gopher", 200, nil)

	got := sum.Summary("The weather is nice today. A gopher dug a burrow. Cats sleep a lot.")
	c.Assert(got, check.Equals, "A gopher dug a burrow.")
}

func (s *SummarizerTestSuite) TestSummaryReturnsEmptyWhenNoMatch(c *check.C) {
	sum := snippet.NewSummarizer("gopher", 200, nil)

	got := sum.Summary("Nothing relevant here at all.")
	c.Assert(got, check.Equals, "")
}

func (s *SummarizerTestSuite) TestSummaryTruncatesToMaxLength(c *check.C) {
	sum := snippet.NewSummarizer("gopher", 10, nil)

	got := sum.Summary("A gopher dug a very long burrow under the garden shed.")
	c.Assert(len(got) <= 15, check.Equals, true)
}

// TestIdfWeightingPrefersSentencesMatchingRarerTerms exercises a case
// where a plain match-count ratio and an IDF-weighted one disagree: the
// first sentence repeats a common term three times, the second uses a
// rare term once. A flat count would rank the first sentence higher; IDF
// weighting ranks the second higher instead, and with room in the
// summary for only one sentence, that is the one selected.
func (s *SummarizerTestSuite) TestIdfWeightingPrefersSentencesMatchingRarerTerms(c *check.C) {
	idf := func(word string) float64 {
		if strings.EqualFold(word, "rare") {
			return 5
		}

		return 0.1
	}

	// The second sentence token keeps the space that follows the first
	// sentence's period, so it is 32 bytes long.
	sum := snippet.NewSummarizer("common rare", 32, idf)

	content := "The common common common word today. One rare word appears here now."

	got := sum.Summary(content)
	c.Assert(got, check.Equals, "One rare word appears here now.")
}
