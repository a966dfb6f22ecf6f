package matcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/hanzi"
)

// ErrInvalidOptions is returned for matching options out of range.
var ErrInvalidOptions = errors.New("invalid matching options")

// Options control a matching pass.
type Options struct {
	Looseness   float64 // tolerance for sub-stroke and stroke count mismatch, in [0, 1)
	MaxResults  int     // size of the result list, ≥ 1
	Simplified  bool    // include simplified characters
	Traditional bool    // include traditional characters
}

// DefaultOptions returns the options of a typical recognition request:
// looseness 0.25, 15 results, both character sets.
func DefaultOptions() Options {
	return Options{
		Looseness:   0.25,
		MaxResults:  15,
		Simplified:  true,
		Traditional: true,
	}
}

// Validate checks the options for values out of range.
func (o Options) Validate() error {
	if math.IsNaN(o.Looseness) || o.Looseness < 0 || o.Looseness >= 1 {
		return fmt.Errorf("%w: looseness %v not in [0, 1)", ErrInvalidOptions, o.Looseness)
	}
	if o.MaxResults < 1 {
		return fmt.Errorf("%w: max results %d < 1", ErrInvalidOptions, o.MaxResults)
	}
	return nil
}

// StrokeRange returns the range of reference stroke counts worth scoring
// for an input of the given number of strokes: strokes ± ⌈looseness·strokes⌉,
// clamped to 1…48.
func StrokeRange(strokes int, looseness float64) (lo, hi int) {
	delta := int(math.Ceil(looseness * float64(strokes)))
	lo = min(max(strokes-delta, 1), hanzi.MaxStrokeCount)
	hi = min(max(strokes+delta, 1), hanzi.MaxStrokeCount)
	return lo, hi
}
