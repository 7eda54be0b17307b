package market

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSearchSkew is the normalized edit-distance ceiling for a fuzzy hit.
const maxSearchSkew = 0.4

// Search ranks listings against a free-text query over title, description,
// and category. Substring matches rank ahead of fuzzy ones; fuzzy matches
// are admitted while their edit distance stays under maxSearchSkew of the
// field length. An empty query returns the input unchanged.
func Search(listings []Listing, query string) []Listing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return listings
	}
	type scored struct {
		l     Listing
		score float64
		pos   int
	}
	var hits []scored
	for i, l := range listings {
		s, ok := matchScore(l, query)
		if !ok {
			continue
		}
		hits = append(hits, scored{l: l, score: s, pos: i})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})
	out := make([]Listing, len(hits))
	for i, h := range hits {
		out[i] = h.l
	}
	return out
}

func matchScore(l Listing, query string) (float64, bool) {
	best := -1.0
	for _, field := range []string{l.Title, l.Description, l.Category} {
		f := strings.ToLower(field)
		if f == "" {
			continue
		}
		if strings.Contains(f, query) {
			return 0, true
		}
		dist := levenshtein.ComputeDistance(f, query)
		maxlen := len(f)
		if len(query) > maxlen {
			maxlen = len(query)
		}
		skew := float64(dist) / float64(maxlen)
		if skew < maxSearchSkew && (best < 0 || skew < best) {
			best = skew
		}
	}
	return best, best >= 0
}
