// Package snippet builds sanitized, keyword-highlighted result
// summaries from a page's indexed paragraph text and a search query.
package snippet

import (
	"bufio"
	"bytes"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type matchedSentence struct {
	position   int
	text       string
	matchRatio float32
}

// IdfFunc looks up a word's inverse document frequency in whatever
// index a Summarizer is summarizing results from. A nil IdfFunc makes
// every matched word count equally, as if every word were equally
// rare.
type IdfFunc func(word string) float64

// Summarizer selects and stitches together the sentences of a page's
// text that best match a search query, up to a maximum length. When
// given an IdfFunc, a sentence's match quality favors sentences that
// repeat the query's rarer, more distinguishing words over sentences
// that only repeat common ones, the same rarity weighting the engine
// already applies when scoring whole pages.
type Summarizer struct {
	searchTerms   []string
	maxSummaryLen int
	idf           IdfFunc

	sumBuff bytes.Buffer
}

// NewSummarizer returns a Summarizer for the given whitespace
// separated search terms. idf may be nil, in which case every matched
// term is weighted equally.
func NewSummarizer(searchTerms string, maxSummaryLen int, idf IdfFunc) *Summarizer {
	return &Summarizer{
		searchTerms:   strings.Fields(strings.Trim(searchTerms, `"`)),
		maxSummaryLen: maxSummaryLen,
		idf:           idf,
	}
}

// Summary formats and returns a summary of content built from the
// sentences that matched the summarizer's search terms.
func (s *Summarizer) Summary(content string) string {
	s.sumBuff.Reset()

	lastPosition := -1
	for _, sentence := range s.sentencesForSummary(content) {
		if lastPosition != -1 && sentence.position-lastPosition != 1 {
			_, _ = s.sumBuff.WriteString("...")
		}

		lastPosition = sentence.position

		_, _ = s.sumBuff.WriteString(sentence.text)

		if !strings.HasSuffix(sentence.text, ".") {
			_ = s.sumBuff.WriteByte('.')
		}
	}

	return strings.TrimSpace(s.sumBuff.String())
}

func (s *Summarizer) sentencesForSummary(content string) []*matchedSentence {
	var matched []*matchedSentence

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Split(scanSentence)

	for position := 0; scanner.Scan(); position++ {
		sentence := scanner.Text()
		if matchRatio := s.matchRatio(sentence); matchRatio > 0 {
			matched = append(matched, &matchedSentence{
				position:   position,
				text:       sentence,
				matchRatio: matchRatio,
			})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].matchRatio > matched[j].matchRatio
	})

	var summary []*matchedSentence

	for i, remainingLen := 0, s.maxSummaryLen; i < len(matched) && remainingLen > 0; i++ {
		if sentenceLen := len(matched[i].text); sentenceLen > remainingLen {
			matched[i].text = string(([]rune(matched[i].text))[:remainingLen]) + "..."
		}

		remainingLen -= len(matched[i].text)
		summary = append(summary, matched[i])
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].position < summary[j].position
	})

	return summary
}

// matchRatio scores how well sentence supports the summarizer's
// search terms, as a fraction of its word count. Each matched word
// contributes its IDF weight rather than a flat 1, so a sentence that
// repeats a term the index considers rare outranks one that only
// repeats a term nearly every page contains.
func (s *Summarizer) matchRatio(sentence string) float32 {
	var wordCount int
	var matchedWeight float64

	scanner := bufio.NewScanner(strings.NewReader(sentence))
	scanner.Split(bufio.ScanWords)

	for ; scanner.Scan(); wordCount++ {
		word := scanner.Text()
		for _, term := range s.searchTerms {
			if strings.EqualFold(term, word) {
				matchedWeight += s.termWeight(word)

				break
			}
		}
	}

	if wordCount == 0 {
		wordCount = 1
	}

	return float32(matchedWeight / float64(wordCount))
}

// termWeight returns how much a single matched occurrence of word
// should count for. Without an IdfFunc every match counts as 1; with
// one, a word counts for its IDF when that is positive, so among such
// words the rarer counts for more, and a word whose IDF is zero or
// negative counts as 1.
func (s *Summarizer) termWeight(word string) float64 {
	if s.idf == nil {
		return 1
	}

	if weight := s.idf(word); weight > 0 {
		return weight
	}

	return 1
}

// scanSentence is a bufio.SplitFunc that splits text on sentence
// terminators ('.', '!', '?').
func scanSentence(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF {
		if len(data) == 0 {
			return 0, nil, nil
		}

		return len(data), data, nil
	}

	var seq [3]rune
	var index, skip int

	for i := 0; i < len(seq); i++ {
		if seq[i], skip = scanRune(data[index:]); skip < 0 {
			return 0, nil, nil
		}
		index += skip
	}

	for index < len(data) {
		if shouldBreakSentenceAtMiddleChar(seq) {
			return index - skip, data[:index-skip], nil
		}

		seq[0], seq[1] = seq[1], seq[2]
		if seq[2], skip = scanRune(data[index:]); skip < 0 {
			return 0, nil, nil
		}

		index += skip
	}

	return 0, nil, nil
}

func shouldBreakSentenceAtMiddleChar(seq [3]rune) bool {
	condition1 := unicode.IsLower(seq[0]) || unicode.IsSymbol(seq[0]) ||
		unicode.IsNumber(seq[0]) || unicode.IsSpace(seq[0])

	condition2 := seq[1] == '.' || seq[1] == '!' || seq[1] == '?'

	condition3 := unicode.IsPunct(seq[2]) || unicode.IsSpace(seq[2]) ||
		unicode.IsSymbol(seq[2]) || unicode.IsNumber(seq[2]) ||
		unicode.IsUpper(seq[2])

	return condition1 && condition2 && condition3
}

func scanRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, -1
	}

	if data[0] < utf8.RuneSelf {
		return rune(data[0]), 1
	}

	r, size := utf8.DecodeRune(data)
	if size > 1 {
		return r, size
	}

	return 0, -1
}
