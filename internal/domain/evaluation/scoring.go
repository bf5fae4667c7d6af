package evaluation

// WeightedAverage computes Σ(score×weight)/Σ(weight) over the stored item
// scores, using the plan's item weights. Scores for items no longer in the
// weight set are ignored. A zero total weight aggregates to 0.
func WeightedAverage(scores []StoredScore, weights map[string]float64) float64 {
	var weightedSum, totalWeight float64
	for _, stored := range scores {
		weight, ok := weights[stored.ItemID]
		if !ok {
			continue
		}
		weightedSum += stored.Score * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
