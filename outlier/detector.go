package outlier

import (
	"fmt"

	"github.com/arloliu/movekit/internal/config"
)

// Detector classifies a probe sequence.
type Detector interface {
	Detect(probes []Probe) Classification
}

// GreedyDetector runs Greedy with Predicate.
type GreedyDetector struct {
	Predicate Predicate
}

func (d GreedyDetector) Detect(probes []Probe) Classification {
	return Greedy(probes, d.Predicate)
}

// ChainDetector runs LongestChain with Predicate.
type ChainDetector struct {
	Predicate Predicate
}

func (d ChainDetector) Detect(probes []Probe) Classification {
	return LongestChain(probes, d.Predicate)
}

// SegmentedDetector runs Segmented with Predicate and MinSegment.
type SegmentedDetector struct {
	Predicate  Predicate
	MinSegment int
}

func (d SegmentedDetector) Detect(probes []Probe) Classification {
	return Segmented(probes, d.Predicate, d.MinSegment)
}

// NewDetector builds the detector named by a filter configuration.
func NewDetector(name string, pred Predicate, minSegment int) (Detector, error) {
	switch name {
	case config.DetectorGreedy:
		return GreedyDetector{Predicate: pred}, nil
	case config.DetectorChain:
		return ChainDetector{Predicate: pred}, nil
	case config.DetectorSegmented:
		return SegmentedDetector{Predicate: pred, MinSegment: minSegment}, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", name)
	}
}
