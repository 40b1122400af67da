package models

import "sort"

// CalculateSceneTimings folds probes into contiguous absolute scene windows:
// durations are summed per scene index, then accumulated in ascending index
// order so each scene starts exactly where the previous one ended. The
// resulting sequence has no gaps and no overlaps.
func CalculateSceneTimings(probes []AudioProbe) []SceneTiming {
	sums := make(map[int]float64)
	var order []int
	for _, p := range probes {
		if _, ok := sums[p.SceneIndex]; !ok {
			order = append(order, p.SceneIndex)
		}
		sums[p.SceneIndex] += p.Duration
	}
	sort.Ints(order)

	timings := make([]SceneTiming, 0, len(order))
	current := 0.0
	for _, idx := range order {
		d := sums[idx]
		timings = append(timings, SceneTiming{
			SceneIndex: idx,
			Start:      current,
			End:        current + d,
			Duration:   d,
		})
		current += d
	}
	return timings
}
