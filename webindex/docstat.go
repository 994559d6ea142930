package webindex

import "math"

// DocTermStat is one word's statistics within a single document (an
// IndexedPage or a QueryDocument). It is owned by its containing
// document; the reference back to the word's GlobalTermStat is a
// lookup handle only, never a lifetime-affecting back-reference.
type DocTermStat struct {
	Word  string
	Count int

	global *GlobalTermStat

	tf      float64
	tfKnown bool

	tfIdf      float64
	tfIdfKnown bool
}

func newDocTermStat(word string, global *GlobalTermStat) *DocTermStat {
	return &DocTermStat{Word: word, Count: 1, global: global}
}

// TF returns Count / size, computed at most once per document per
// word and cached from then on.
func (s *DocTermStat) TF(size int) float64 {
	if !s.tfKnown {
		s.tf = float64(s.Count) / float64(size)
		s.tfKnown = true
	}

	return s.tf
}

// TFIDF returns log2(1+TF) * global.IDF(n), computed at most once and
// cached from then on.
func (s *DocTermStat) TFIDF(size, n int) float64 {
	if !s.tfIdfKnown {
		s.tfIdf = math.Log2(1+s.TF(size)) * s.global.IDF(n)
		s.tfIdfKnown = true
	}

	return s.tfIdf
}
