/*
Package matcher scores written characters against reference descriptors and
ranks the best candidates.

A Scorer aligns the sub-stroke sequences of two descriptors. Pairs of aligned
sub-strokes cost the angular distance of their directions plus the difference
of their lengths; sub-strokes left unaligned on either side cost a skip
penalty. How many sub-strokes may be skipped is controlled by a looseness
parameter in [0, 1): 0 requires equal sub-stroke counts, values towards 1
tolerate more extra or missing sub-strokes at the cost of a wider alignment
band.

A Ranker keeps the best N matches of a scan. Its running worst score is handed
to the scorer as a bound, so that hopeless candidates are abandoned early.

Run ties scanner, scorer and ranker together for one cancellable pass over a
stroke store.
*/
package matcher

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi.matcher'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.matcher")
}
