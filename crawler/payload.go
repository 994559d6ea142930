package crawler

import "github.com/nicwatson/javasandcrawer/pipeline"

// fetchOutcome is the result of attempting to retrieve and parse a
// single frontier entry.
type fetchOutcome struct {
	entry frontierEntry
	page  fetchedPage
	err   error
}

// fetchedPage is the parsed content of a successfully fetched page,
// prior to being folded into a webindex.UnprocessedPage by the
// caller (which still needs to resolve href strings against the
// page's own URL).
type fetchedPage struct {
	title string
	text  string
	hrefs []string
}

// fetchPayload carries a single frontier entry through the concurrent
// fetch pipeline and accumulates its outcome as it is processed.
type fetchPayload struct {
	entry   frontierEntry
	outcome fetchOutcome
}

var _ pipeline.Payload = (*fetchPayload)(nil)

func (p *fetchPayload) Clone() pipeline.Payload {
	clone := *p

	return &clone
}

func (p *fetchPayload) MarkAsProcessed() {}
