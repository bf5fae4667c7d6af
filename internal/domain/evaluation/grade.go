package evaluation

import "sort"

// Classify maps a score onto a grade and promotion flag. Bands are scanned
// in ascending MinScore order and the first closed interval [MinScore,
// MaxScore] containing the score wins, so overlapping bands resolve to the
// lowest-MinScore one; callers relying on boundary scores should declare
// disjoint bands. A score outside every band yields ("", false).
func Classify(score float64, bands []GradeBand) (string, bool) {
	ordered := make([]GradeBand, len(bands))
	copy(ordered, bands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinScore < ordered[j].MinScore
	})

	for _, band := range ordered {
		if score >= band.MinScore && score <= band.MaxScore {
			return band.Grade, band.IsPromotionCandidate
		}
	}
	return "", false
}
