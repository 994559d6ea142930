package crawler

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/nicwatson/javasandcrawer/htmlx"
	"github.com/nicwatson/javasandcrawer/pipeline"
	"github.com/nicwatson/javasandcrawer/urlnorm"
)

// FetchIOError wraps a failure to retrieve a page, as distinct from a
// MalformedURLError which means the URL was never even attempted.
type FetchIOError struct {
	URL urlnorm.URL
	Err error
}

func (e *FetchIOError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchIOError) Unwrap() error { return e.Err }

// fetchProcessor retrieves and parses one page per payload. It returns
// an error only for a payload of the wrong type: fetch failures are
// recorded on the payload's outcome so a single bad URL cannot abort
// the whole worker pool.
type fetchProcessor struct {
	getter   URLGetter
	detector PrivateNetworkDetector
}

var _ pipeline.Processor = (*fetchProcessor)(nil)

func (fp *fetchProcessor) Process(ctx context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload, ok := p.(*fetchPayload)
	if !ok {
		return nil, fmt.Errorf("crawler: unexpected payload type %T", p)
	}

	page, err := fp.fetchAndParse(payload.entry.url)
	payload.outcome = fetchOutcome{entry: payload.entry, page: page, err: err}

	return payload, nil
}

// fetchAndParse retrieves url's content, refusing hosts that resolve
// to a private network address, and extracts its title, paragraph
// text and outbound href strings.
func (fp *fetchProcessor) fetchAndParse(url urlnorm.URL) (fetchedPage, error) {
	host := url.Host
	if h, _, splitErr := net.SplitHostPort(host); splitErr == nil {
		host = h
	}

	private, err := fp.detector.IsNetworkPrivate(host)
	if err != nil {
		return fetchedPage{}, &FetchIOError{URL: url, Err: err}
	}
	if private {
		return fetchedPage{}, &FetchIOError{URL: url, Err: fmt.Errorf("refusing to fetch private network address %s", host)}
	}

	resp, err := fp.getter.Get(url.String())
	if err != nil {
		return fetchedPage{}, &FetchIOError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fetchedPage{}, &FetchIOError{URL: url, Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchedPage{}, &FetchIOError{URL: url, Err: err}
	}

	raw := normalizeLineEndings(string(body))

	return fetchedPage{
		title: htmlx.ExtractTitle(raw),
		text:  htmlx.ExtractParagraphs(raw),
		hrefs: htmlx.ExtractHrefs(raw),
	}, nil
}

// normalizeLineEndings collapses CRLF and lone CR into LF so
// downstream text processing always sees Unix line endings.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\r", "\n")
}
