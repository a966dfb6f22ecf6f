package matcher

import (
	"math"

	"github.com/npillmayer/hanzi"
)

// Default cost parameters of a Scorer.
const (
	DefaultSkipPenalty        = 1.0
	DefaultStrokeCountPenalty = 0.1
)

// Scorer computes the distance between two character descriptors. Lower is
// better, identical descriptors score 0.
//
// A Scorer is immutable after construction and may be shared between
// goroutines.
type Scorer struct {
	Looseness          float64 // in [0, 1)
	SkipPenalty        float64 // base cost of an unaligned sub-stroke
	StrokeCountPenalty float64 // cost per stroke of difference
}

// NewScorer creates a scorer with default penalties.
func NewScorer(looseness float64) *Scorer {
	return &Scorer{
		Looseness:          looseness,
		SkipPenalty:        DefaultSkipPenalty,
		StrokeCountPenalty: DefaultStrokeCountPenalty,
	}
}

// Score returns the distance of candidate from input. Candidates whose
// sub-stroke count differs by more than the looseness allows score +Inf.
func (sc *Scorer) Score(input, candidate *hanzi.CharacterDescriptor) float64 {
	score, _ := sc.align(input, candidate, math.Inf(1))
	return score
}

// ScoreBounded is Score for candidates which are of interest only if they
// score below bound. It returns false, and an unspecified score, as soon as
// the partial alignment cost shows that bound cannot be beaten.
func (sc *Scorer) ScoreBounded(input, candidate *hanzi.CharacterDescriptor, bound float64) (float64, bool) {
	score, complete := sc.align(input, candidate, bound)
	if !complete || score >= bound {
		return score, false
	}
	return score, true
}

// Band returns the band half-width of an alignment of n and m sub-strokes.
func (sc *Scorer) Band(n, m int) int {
	return int(math.Ceil(sc.Looseness * float64(max(n, m))))
}

// align computes a banded edit-distance alignment with two rolling rows.
// It returns false if it stopped early because every cell of a row, plus the
// stroke count penalty, reached bound.
func (sc *Scorer) align(a, b *hanzi.CharacterDescriptor, bound float64) (float64, bool) {
	n, m := a.SubStrokeCount, b.SubStrokeCount
	inf := math.Inf(1)
	band := sc.Band(n, m)
	if abs(n-m) > band {
		return inf, true
	}
	base := sc.StrokeCountPenalty * float64(abs(a.StrokeCount-b.StrokeCount))
	if base >= bound {
		return base, false
	}
	skipBase := (1 - sc.Looseness) * sc.SkipPenalty
	var rows [2][hanzi.MaxSubStrokeCount + 1]float64
	prev, curr := &rows[0], &rows[1]
	prev[0] = 0
	for j := 1; j <= m; j++ {
		if j <= band {
			prev[j] = prev[j-1] + skipBase + b.Lengths[j-1]
		} else {
			prev[j] = inf
		}
	}
	for i := 1; i <= n; i++ {
		lo, hi := max(0, i-band), min(m, i+band)
		for j := 0; j <= m; j++ {
			curr[j] = inf
		}
		skipA := skipBase + a.Lengths[i-1]
		rowMin := inf
		for j := lo; j <= hi; j++ {
			best := prev[j] + skipA // skip input sub-stroke i
			if j > 0 {
				if c := curr[j-1] + skipBase + b.Lengths[j-1]; c < best {
					best = c // skip candidate sub-stroke j
				}
				c := prev[j-1] + segmentCost(a.Directions[i-1], a.Lengths[i-1],
					b.Directions[j-1], b.Lengths[j-1])
				if c < best {
					best = c
				}
			}
			curr[j] = best
			rowMin = min(rowMin, best)
		}
		if base+rowMin >= bound {
			return base + rowMin, false
		}
		prev, curr = curr, prev
	}
	return base + prev[m], true
}

// segmentCost is the cost of aligning two sub-strokes, in [0, 2].
func segmentCost(dirA, lenA, dirB, lenB float64) float64 {
	return angularDistance(dirA, dirB)/math.Pi + math.Abs(lenA-lenB)
}

// angularDistance returns the shortest distance between two directions,
// in [0, π].
func angularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
