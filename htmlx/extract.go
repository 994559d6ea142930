// Package htmlx pulls title text, paragraph text, and outbound hrefs
// out of raw HTML using the same tag-shaped regular expressions the
// original crawler used instead of a conformant parser. The patterns
// are reproduced exactly because the observable ranking of a crawl
// depends on which substrings become tokens, right down to the
// backtracking quirks of a greedy, non-conformant match.
package htmlx

import (
	"regexp"
	"strings"
)

var (
	titleTag = regexp.MustCompile(`(?is)<[^>]*title[^>]*>(.+)<[^>]*/title[^>]*>`)
	hrefTag  = regexp.MustCompile(`(?is)<\s*a[^>]+href\s*=\s*"(.+?)"[^>]*>`)

	anyTag          = regexp.MustCompile(`(?is)<[^>]*>`)
	paragraphClose  = regexp.MustCompile(`(?is)<[^>]*/p[^>]*>`)
)

const untitled = "<Untitled Page>"

// ExtractTitle returns the first <title>...</title> capture, or the
// literal placeholder "<Untitled Page>" if none is present.
func ExtractTitle(raw string) string {
	m := titleTag.FindStringSubmatch(raw)
	if m == nil {
		return untitled
	}

	return m[1]
}

// ExtractParagraphs reproduces `<[^>]*p(?!re|ic)[^>]*>(.+)<[^>]*/p[^>]*>`
// applied as a repeated find, the way the original crawler did it. Go's
// RE2 engine has no negative lookahead, so the open-tag exclusion of
// "pre"/"pic" is applied by hand below; everything else, including the
// greedy DOTALL `.+` that swallows up to the *last* closing tag in the
// remaining text rather than the nearest one, is reproduced faithfully
// because that backtracking behaviour is part of the observable
// extraction contract, not an accident to be cleaned up.
func ExtractParagraphs(raw string) string {
	var parts []string

	pos := 0
	for {
		openStart, openEnd, ok := nextParagraphOpenTag(raw, pos)
		if !ok {
			break
		}

		closeStart, closeEnd, ok := lastParagraphCloseTag(raw, openEnd)
		if !ok {
			break
		}

		parts = append(parts, raw[openEnd:closeStart])
		_ = openStart
		pos = closeEnd
	}

	return strings.Join(parts, " ")
}

// nextParagraphOpenTag finds the first "<...>" tag at or after pos whose
// shape matches a paragraph open tag: it contains a 'p' that is not
// immediately followed by "re" or "ic" (the hand-rolled equivalent of
// the original's `p(?!re|ic)` lookahead).
func nextParagraphOpenTag(raw string, pos int) (start, end int, ok bool) {
	for _, loc := range anyTag.FindAllStringIndex(raw[pos:], -1) {
		tag := raw[pos+loc[0] : pos+loc[1]]
		if hasUnexcludedP(tag) {
			return pos + loc[0], pos + loc[1], true
		}
	}

	return 0, 0, false
}

// hasUnexcludedP reports whether tag contains a 'p'/'P' not immediately
// followed by "re" or "ic" (case-insensitive).
func hasUnexcludedP(tag string) bool {
	lower := strings.ToLower(tag)

	for i := 0; i < len(lower); i++ {
		if lower[i] != 'p' {
			continue
		}

		if strings.HasPrefix(lower[i+1:], "re") || strings.HasPrefix(lower[i+1:], "ic") {
			continue
		}

		return true
	}

	return false
}

// lastParagraphCloseTag finds the *last* occurrence of a
// "<.../p...>"-shaped close tag anywhere in raw[from:], mirroring the
// greedy backtracking of the original's DOTALL `.+` content match.
func lastParagraphCloseTag(raw string, from int) (start, end int, ok bool) {
	matches := paragraphClose.FindAllStringIndex(raw[from:], -1)
	if len(matches) == 0 {
		return 0, 0, false
	}

	last := matches[len(matches)-1]

	return from + last[0], from + last[1], true
}

// ExtractHrefs returns every href attribute value found on an <a> tag,
// in document order.
func ExtractHrefs(raw string) []string {
	matches := hrefTag.FindAllStringSubmatch(raw, -1)
	hrefs := make([]string, 0, len(matches))

	for _, m := range matches {
		hrefs = append(hrefs, m[1])
	}

	return hrefs
}
