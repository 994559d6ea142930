package webindex

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nicwatson/javasandcrawer/urlnorm"
)

// Snapshot is the flat, cycle-free serialisable form of an Index. Go
// values keyed by URL string sidestep the pointer-graph identity
// problem entirely, so the snapshot is just slices and maps of plain
// data; reloading it and re-deriving DocTermStat/GlobalTermStat
// linkage from those keys reproduces the same observable index, except
// that raw page Text is not persisted and is empty after Restore.
type Snapshot struct {
	Pages []SnapshotPage
}

// SnapshotPage is one page's persisted state.
type SnapshotPage struct {
	URL      urlnorm.URL
	Title    string
	Outlinks []urlnorm.URL
	Words    map[string]int // word -> count, sufficient to rebuild TF/TF-IDF
	PageRank float64
}

// Snapshot captures the index's current state as an opaque,
// reloadable value. It only makes sense to call after Build.
func (idx *Index) Snapshot() (Snapshot, error) {
	if !idx.built {
		return Snapshot{}, ErrIndexNotBuilt
	}

	snap := Snapshot{Pages: make([]SnapshotPage, 0, len(idx.pageOrder))}

	for _, key := range idx.pageOrder {
		page := idx.pages[key]

		words := make(map[string]int)
		for _, word := range idx.wordOrder {
			if stat := page.Stat(word); stat != nil {
				words[word] = stat.Count
			}
		}

		snap.Pages = append(snap.Pages, SnapshotPage{
			URL:      page.URL,
			Title:    page.Title,
			Outlinks: page.Outlinks,
			Words:    words,
			PageRank: page.PageRank,
		})
	}

	return snap, nil
}

// Restore rebuilds an Index from a previously captured Snapshot,
// re-deriving every lazy statistic from the raw counts it stored
// rather than persisting the caches themselves.
func Restore(snap Snapshot, logger *logrus.Entry) *Index {
	idx := NewIndex(logger)

	for _, sp := range snap.Pages {
		page := newIndexedPage(sp.URL, sp.Outlinks)
		page.Title = sp.Title
		page.PageRank = sp.PageRank

		for word, count := range sp.Words {
			for i := 0; i < count; i++ {
				page.addToken(word, idx.resolveGlobal)
			}
		}

		key := sp.URL.String()
		idx.pages[key] = page
		idx.pageOrder = append(idx.pageOrder, key)
	}

	idx.linkReciprocalInlinks()
	idx.primeTFIDF()
	idx.built = true

	return idx
}

// EncodeSnapshot serialises a Snapshot to its opaque on-disk form.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("webindex: encode snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeSnapshot parses a snapshot previously produced by
// EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("webindex: decode snapshot: %w", err)
	}

	return snap, nil
}

// Store persists and retrieves an Index's opaque snapshot blob. It is
// the extension point for swapping storage backends; cmd/sandcrawler
// picks one by the scheme of its --index-store-uri flag.
type Store interface {
	Save(snap Snapshot) error
	Load() (Snapshot, error)

	// Clear removes any previously persisted snapshot. It must not
	// fail merely because no snapshot exists yet.
	Clear() error
}
