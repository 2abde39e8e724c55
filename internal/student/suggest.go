package student

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// ClosestName returns the stored name nearest to query by edit distance,
// ignoring case. Ties go to the earlier record. It reports false when the
// store is empty or the query is blank.
func (s *Store) ClosestName(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(s.records) == 0 {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, r := range s.records {
		dist := levenshtein.ComputeDistance(q, strings.ToLower(r.Name))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = r.Name, dist
		}
	}
	return best, true
}
