package webindex

import "errors"

// ErrUnknownURLQuery names a query against a URL the Index never
// indexed. No Index method returns it: the lookups (Idf, Tf, TfIdf,
// PageRank, Outgoing, Incoming) answer an unknown URL with the
// sentinel value documented on each method instead.
var ErrUnknownURLQuery = errors.New("webindex: unknown url query")

// ErrUnknownTermQuery names a query for a term the Index never saw in
// any page. No Index method returns it: an unknown term yields an IDF
// of 0 and contributes nothing to search scores.
var ErrUnknownTermQuery = errors.New("webindex: unknown term query")

// ErrIndexNotBuilt is returned by Search, SearchPlus and Snapshot when
// called before Build has completed. The statistic lookups return
// their sentinel values instead.
var ErrIndexNotBuilt = errors.New("webindex: index not built")
