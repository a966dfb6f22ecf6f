/*
Package hanzi recognizes handwritten Chinese characters by the shape of their
pen strokes.

A character is written as a sequence of strokes, each stroke a sequence of
sampled points. Every stroke is segmented into straight-line-equivalent
sub-strokes, delimited by pivot points where the pen turns sharply or drifts
along a curve. The sub-strokes of all strokes, expressed as (direction, length)
pairs with lengths normalized to the character's bounding box, make up a
CharacterDescriptor. Descriptors are compared against a compiled store of
reference descriptors (see package store), and the closest candidates are
reported in ascending order of their match score (see package matcher).

Reference data comes in two line-oriented text formats: a strokes corpus
(package strokesfile) and a type relationship file marking characters as
generic, simplified, traditional or equivalent to another character (package
typesfile). Package corpus compiles both into the binary store format.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package hanzi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi'
func tracer() tracing.Trace {
	return tracing.Select("hanzi")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
