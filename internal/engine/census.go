package engine

import (
	"sort"
	"strconv"
	"strings"
)

// censusTopK is the number of ranked species retained in a census snapshot.
const censusTopK = 5

// censusSampleRate mirrors the grid-metrics sample rate; census samples
// cells rather than bytes (§4.7).
const censusSampleRate = 0.1

// SpeciesEntry describes one ranked species within a CensusSnapshot.
type SpeciesEntry struct {
	Rank      int
	Code      string
	Count     int
	Dominance float64
	Entropy   float64
}

// CensusSnapshot is a periodic species inventory produced by strided
// sampling over cells, per §4.7.
type CensusSnapshot struct {
	SpeciesCount int
	TopSpecies   []SpeciesEntry
}

func (c CensusSnapshot) clone() CensusSnapshot {
	out := c
	out.TopSpecies = append([]SpeciesEntry(nil), c.TopSpecies...)
	return out
}

// fingerprint builds a canonical, injective serialization of a tape: its
// decimal byte values joined by commas. Two tapes with identical byte
// sequences always collide; no other pair does.
func fingerprint(tape []byte) string {
	var b strings.Builder
	for i, v := range tape {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// takeCensus strides over the grid's cells (not bytes), tallies a
// fingerprint -> count map, and ranks the top censusTopK species. It is a
// deterministic arithmetic-stride pass and never draws from the RNG.
func takeCensus(g *grid, cellCount int) CensusSnapshot {
	if cellCount == 0 {
		return CensusSnapshot{SpeciesCount: 0, TopSpecies: nil}
	}
	step := gridMetricStride(censusSampleRate)

	counts := make(map[string]int)
	tapes := make(map[string][]byte)
	sampled := 0
	for i := 0; i < cellCount; i += step {
		off := i * g.t
		tape := g.data[off : off+g.t]
		fp := fingerprint(tape)
		counts[fp]++
		if _, ok := tapes[fp]; !ok {
			stored := make([]byte, g.t)
			copy(stored, tape)
			tapes[fp] = stored
		}
		sampled++
	}

	type scored struct {
		fp    string
		count int
	}
	ranked := make([]scored, 0, len(counts))
	for fp, c := range counts {
		ranked = append(ranked, scored{fp, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].fp < ranked[j].fp
	})

	k := censusTopK
	if k > len(ranked) {
		k = len(ranked)
	}
	totalCells := g.w * g.h
	top := make([]SpeciesEntry, 0, k)
	for i := 0; i < k; i++ {
		dominance := float64(ranked[i].count) / float64(sampled)
		// floor, not round; see DESIGN.md's Open Question decisions.
		count := int(dominance * float64(totalCells))
		top = append(top, SpeciesEntry{
			Rank:      i + 1,
			Code:      ranked[i].fp,
			Count:     count,
			Dominance: dominance,
			Entropy:   genomeEntropy(tapes[ranked[i].fp]),
		})
	}

	return CensusSnapshot{SpeciesCount: len(counts), TopSpecies: top}
}
