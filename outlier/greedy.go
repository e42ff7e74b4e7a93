package outlier

import "iter"

// Filter is the incremental form of the greedy detector. The first probe
// pushed becomes the reference; each later probe is accepted and becomes the
// new reference when it is consistent with the current one, and is rejected
// otherwise with the reference left unchanged.
//
// A Filter is not safe for concurrent use.
type Filter struct {
	pred   Predicate
	ref    Probe
	hasRef bool
}

// NewFilter returns a Filter judging probes with pred.
func NewFilter(pred Predicate) *Filter {
	return &Filter{pred: pred}
}

// Push classifies p and reports whether it is an inlier.
func (f *Filter) Push(p Probe) bool {
	if !f.hasRef {
		f.ref, f.hasRef = p, true
		return true
	}
	if !f.pred.Consistent(f.ref, p) {
		return false
	}
	f.ref = p

	return true
}

// Reference returns the last accepted probe.
func (f *Filter) Reference() (Probe, bool) { return f.ref, f.hasRef }

// Reset forgets the reference so the next probe is accepted unconditionally.
func (f *Filter) Reset() {
	f.ref, f.hasRef = Probe{}, false
}

// Greedy makes a single forward pass: the first probe is an inlier, and each
// following probe is an inlier when it is consistent with the most recent
// inlier. It runs in linear time.
func Greedy(probes []Probe, pred Predicate) Classification {
	var c Classification
	f := NewFilter(pred)
	for i, p := range probes {
		if f.Push(p) {
			c.Inliers = append(c.Inliers, i)
		} else {
			c.Outliers = append(c.Outliers, i)
		}
	}

	return c
}

// Stream applies the greedy detector lazily, yielding each input key with
// its inlier flag.
func Stream(seq iter.Seq2[int, Probe], pred Predicate) iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		f := NewFilter(pred)
		for i, p := range seq {
			if !yield(i, f.Push(p)) {
				return
			}
		}
	}
}
