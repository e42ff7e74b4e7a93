package outlier

import "slices"

// LongestChain returns the longest subsequence in which every probe is
// consistent with its predecessor in the subsequence. Ties keep the chain
// ending earliest and, for each member, the nearest admissible predecessor.
//
// It is quadratic in the worst case; the backward scan for a predecessor
// stops once no earlier probe could extend a longer chain.
func LongestChain(probes []Probe, pred Predicate) Classification {
	n := len(probes)
	if n == 0 {
		return Classification{}
	}

	best := make([]int, n) // length of the longest chain ending at j
	prev := make([]int, n)
	for j := range n {
		best[j], prev[j] = 1, -1
		for i := j - 1; i >= 0; i-- {
			// A chain through i is at most i+2 long.
			if best[j] >= i+2 {
				break
			}
			if best[i]+1 > best[j] && pred.Consistent(probes[i], probes[j]) {
				best[j], prev[j] = best[i]+1, i
			}
		}
	}

	end := 0
	for j := 1; j < n; j++ {
		if best[j] > best[end] {
			end = j
		}
	}

	inliers := make([]int, 0, best[end])
	for j := end; j >= 0; j = prev[j] {
		inliers = append(inliers, j)
	}
	slices.Reverse(inliers)

	return partition(n, inliers)
}

// partition builds a Classification from sorted inlier indices over [0, n).
func partition(n int, inliers []int) Classification {
	c := Classification{Inliers: inliers}
	k := 0
	for i := range n {
		if k < len(inliers) && inliers[k] == i {
			k++
			continue
		}
		c.Outliers = append(c.Outliers, i)
	}

	return c
}
