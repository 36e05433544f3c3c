package engine

import "math"

// StatsSnapshot is a point-in-time view of one epoch's aggregate metrics.
// Returned by value from Engine.Stats/History so callers cannot mutate
// engine-owned state through it.
type StatsSnapshot struct {
	Epoch                uint64
	AvgComplexity        float64
	ReplicationRate      float64
	EffectiveReplication float64
	Entropy              float64
	ZeroDensity          float64
	Census               *CensusSnapshot
	LastCensusEpoch      uint64
}

func (s StatsSnapshot) clone() StatsSnapshot {
	if s.Census != nil {
		c := s.Census.clone()
		s.Census = &c
	}
	return s
}

// epochAccumulators tallies raw totals across the interactions of one
// in-progress epoch. Reset to zero after every complete_epoch call.
type epochAccumulators struct {
	totalComplexity float64
	totalCopies     float64
	totalEffective  float64
	interactions    int
}

func (a *epochAccumulators) reset() {
	*a = epochAccumulators{}
}

// gridMetricStride returns a sampling stride that visits approximately rate
// of the elements it walks over, adjusted to be odd so it stays coprime with
// power-of-two tape sizes (§4.6/§4.7).
func gridMetricStride(rate float64) int {
	step := int(1.0 / rate)
	if step%2 == 0 {
		step++
	}
	if step < 1 {
		step = 1
	}
	return step
}

// shannonEntropy computes base-2 Shannon entropy over nonzero histogram
// buckets, normalized by the total sample count.
func shannonEntropy(hist [256]int, total int) float64 {
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// gridMetrics performs a single stride-sampled pass over the grid buffer,
// per §4.6. It never touches the RNG: statistics observation must not
// perturb the physics timeline.
func gridMetrics(data []byte, sampleRate float64) (entropy, zeroDensity float64) {
	if len(data) == 0 {
		return 0, 0
	}
	step := gridMetricStride(sampleRate)
	var hist [256]int
	samples := 0
	for i := 0; i < len(data); i += step {
		hist[data[i]]++
		samples++
	}
	entropy = shannonEntropy(hist, samples)
	if samples > 0 {
		zeroDensity = float64(hist[0]) / float64(samples)
	}
	return entropy, zeroDensity
}

// genomeEntropy computes the per-genome Shannon entropy of a T-byte tape,
// per §4.8. It is a pure function of the byte sequence; it never uses the
// RNG.
func genomeEntropy(genome []byte) float64 {
	if len(genome) == 0 {
		return 0
	}
	var hist [256]int
	for _, b := range genome {
		hist[b]++
	}
	return shannonEntropy(hist, len(genome))
}

// historyShouldPush applies the compression policy from §4.5: always push
// on a census epoch, otherwise push only when entropy or zero-density moved
// enough since the last pushed snapshot.
func historyShouldPush(isCensusEpoch bool, prev, cur StatsSnapshot) bool {
	if isCensusEpoch {
		return true
	}
	if math.Abs(cur.Entropy-prev.Entropy) > 0.1 {
		return true
	}
	if math.Abs(cur.ZeroDensity-prev.ZeroDensity) > 0.05 {
		return true
	}
	return false
}
