package hanzi

import "errors"

// Segmentation thresholds.
const (
	// MinSegmentLength is the minimum length of a sub-stroke. If two pivots are
	// closer than this, the earlier one is unmarked and the segments merge.
	MinSegmentLength = 12.5
	// MaxLocalLengthRatio detects abrupt corners: the path length over the last
	// three points compared to the straight distance between the outer two.
	MaxLocalLengthRatio = 1.10
	// MaxRunningLengthRatio detects gradual curves: the path length since the
	// start of the current sub-stroke compared to the straight distance.
	MaxRunningLengthRatio = 1.09
)

// ErrTooFewPoints is returned for strokes with fewer than two points.
var ErrTooFewPoints = errors.New("stroke must have at least two points")

// WrittenPoint is a Point of a written stroke, tagged by segmentation.
type WrittenPoint struct {
	Point
	SubStrokeIndex int  // 1-based index of the sub-stroke within its stroke
	IsPivot        bool // point delimits two sub-strokes
}

// WrittenStroke is one pen-down to pen-up motion.
type WrittenStroke struct {
	points   []WrittenPoint
	analyzed bool
}

// NewStroke creates a stroke from raw pen positions.
func NewStroke(points []Point) (*WrittenStroke, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	s := &WrittenStroke{points: make([]WrittenPoint, len(points))}
	for i, p := range points {
		s.points[i].Point = p
	}
	return s, nil
}

// Points returns the points of the stroke. Clients must not modify them.
func (s *WrittenStroke) Points() []WrittenPoint {
	return s.points
}

// IsAnalyzed is true if the stroke has already been segmented.
func (s *WrittenStroke) IsAnalyzed() bool {
	return s.analyzed
}

// Len returns the number of points.
func (s *WrittenStroke) Len() int {
	return len(s.points)
}

// Analyze segments the stroke by marking pivot points. Points between two
// pivots form one sub-stroke. Analyze is a no-op for an analyzed stroke.
//
// Walking over the points we keep two lengths: localLength is the path length
// over the latest three points, which, compared to the straight distance between
// the first and the last of them, reveals a corner. runningLength is the path
// length since the start of the current sub-stroke, which, compared to the
// straight distance from that start, reveals a gradual curve.
func (s *WrittenStroke) Analyze() {
	if s.analyzed {
		return
	}
	assert(len(s.points) >= 2, "stroke has fewer than 2 points")
	pts := s.points
	first := &pts[0]
	start := first    // start of the current sub-stroke
	previous := first // point before the pivot candidate
	candidate := &pts[1]
	first.IsPivot = true
	subStrokeIndex := 1
	first.SubStrokeIndex = subStrokeIndex
	candidate.SubStrokeIndex = subStrokeIndex
	localLength := first.Distance(candidate.Point)
	runningLength := localLength
	for i := 2; i < len(pts); i++ {
		next := &pts[i]
		pivotLength := candidate.Distance(next.Point)
		localLength += pivotLength
		runningLength += pivotLength
		if localLength >= MaxLocalLengthRatio*previous.Distance(next.Point) ||
			runningLength >= MaxRunningLengthRatio*start.Distance(next.Point) {
			if previous.IsPivot && previous.Distance(candidate.Point) < MinSegmentLength {
				// merge with the tiny segment before; the first point stays a pivot,
				// the sub-strokes produced are the same either way
				if previous != first {
					previous.IsPivot = false
					previous.SubStrokeIndex = subStrokeIndex - 1
				}
			} else {
				subStrokeIndex++
			}
			candidate.IsPivot = true
			runningLength = pivotLength
			start = candidate
		}
		localLength = pivotLength
		previous = candidate
		candidate = next
		candidate.SubStrokeIndex = subStrokeIndex
	}
	candidate.IsPivot = true // last point
	// pen lift often produces a tiny trailing segment
	if previous.IsPivot && previous != first &&
		previous.Distance(candidate.Point) < MinSegmentLength {
		previous.IsPivot = false
		candidate.SubStrokeIndex = subStrokeIndex - 1
	}
	s.analyzed = true
}

// Normalizer scales point distances to the size of a character.
type Normalizer interface {
	NormalizedDistance(p, q Point) float64
}

// SubStrokes returns the sub-strokes between consecutive pivots, analyzing
// the stroke first if necessary.
func (s *WrittenStroke) SubStrokes(norm Normalizer) []SubStroke {
	s.Analyze()
	subs := make([]SubStroke, 0, 4)
	prev := s.points[0].Point
	for _, p := range s.points[1:] {
		if !p.IsPivot {
			continue
		}
		subs = append(subs, SubStroke{
			Direction: prev.Direction(p.Point),
			Length:    norm.NormalizedDistance(prev, p.Point),
		})
		prev = p.Point
	}
	return subs
}
