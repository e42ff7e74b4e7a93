package outlier

// Segmented splits the input wherever two consecutive probes are
// inconsistent and keeps the segments longer than minSegment. Points of
// shorter segments are outliers.
func Segmented(probes []Probe, pred Predicate, minSegment int) Classification {
	n := len(probes)
	inliers := make([]int, 0, n)
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && pred.Consistent(probes[i-1], probes[i]) {
			continue
		}
		if i-start > minSegment {
			for k := start; k < i; k++ {
				inliers = append(inliers, k)
			}
		}
		start = i
	}

	return partition(n, inliers)
}

// Segments returns the [start, end) bounds of the maximal runs of mutually
// consecutive consistent probes.
func Segments(probes []Probe, pred Predicate) [][2]int {
	var out [][2]int
	start := 0
	for i := 1; i <= len(probes); i++ {
		if i < len(probes) && pred.Consistent(probes[i-1], probes[i]) {
			continue
		}
		out = append(out, [2]int{start, i})
		start = i
	}

	return out
}
