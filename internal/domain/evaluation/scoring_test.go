package evaluation

import "testing"

func TestWeightedAverage(t *testing.T) {
	weights := map[string]float64{"i1": 40, "i2": 30, "i3": 30}
	scores := []StoredScore{
		{ItemID: "i1", Score: 80},
		{ItemID: "i2", Score: 90},
		{ItemID: "i3", Score: 70},
	}
	if got := WeightedAverage(scores, weights); got != 80 {
		t.Fatalf("WeightedAverage = %v, want 80", got)
	}
}

func TestWeightedAverageSkipsUnknownItems(t *testing.T) {
	weights := map[string]float64{"i1": 50, "i2": 50}
	scores := []StoredScore{
		{ItemID: "i1", Score: 60},
		{ItemID: "i2", Score: 80},
		{ItemID: "stale", Score: 100},
	}
	if got := WeightedAverage(scores, weights); got != 70 {
		t.Fatalf("WeightedAverage = %v, want 70", got)
	}
}

func TestWeightedAverageZeroWeight(t *testing.T) {
	weights := map[string]float64{"i1": 0}
	scores := []StoredScore{{ItemID: "i1", Score: 95}}
	if got := WeightedAverage(scores, weights); got != 0 {
		t.Fatalf("WeightedAverage with zero total weight = %v, want 0", got)
	}
	if got := WeightedAverage(nil, weights); got != 0 {
		t.Fatalf("WeightedAverage with no scores = %v, want 0", got)
	}
}
