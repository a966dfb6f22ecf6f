/*
Package store compiles reference character descriptors into a compact binary
file and scans them back.

The file is partitioned by character type (generic, simplified, traditional,
in this order) and, within each partition, by stroke count 1..48. Every one of
the 3 × 48 buckets starts with its byte length as a big-endian int32, followed
by the records of the bucket:

	uint16   code point
	uint8    character type
	uint8    stroke count n
	n ×      uint8 number of sub-strokes of stroke i
	m ×      uint16 direction, uint16 length    (m = total sub-strokes)

Directions and lengths are stored as 16-bit fixed point numbers, directions
as fractions of 2π and lengths as fractions of 1. All integers are big-endian.

A Store indexes the bucket offsets once when it is opened and never loads
the records themselves; a Scanner streams the records of the buckets selected
by a Filter. Many scanners may read from one Store concurrently.
*/
package store

import (
	"errors"
	"fmt"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi.store'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.store")
}

// ErrCorruptStore is returned for store data which does not conform to the
// binary layout.
var ErrCorruptStore = errors.New("corrupt stroke store")

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptStore, fmt.Sprintf(format, args...))
}

// Partition is one of the three character type sections of a store.
type Partition int

// Partitions in file order.
const (
	GenericPartition Partition = iota
	SimplifiedPartition
	TraditionalPartition
	partitionCount
)

func (p Partition) String() string {
	switch p {
	case GenericPartition:
		return "generic"
	case SimplifiedPartition:
		return "simplified"
	case TraditionalPartition:
		return "traditional"
	}
	return fmt.Sprintf("Partition(%d)", int(p))
}

// partitionOf maps a resolved character type to its partition. Everything
// not explicitly simplified or traditional is searched as generic.
func partitionOf(t hanzi.CharacterType) Partition {
	switch t {
	case hanzi.Simplified:
		return SimplifiedPartition
	case hanzi.Traditional:
		return TraditionalPartition
	}
	return GenericPartition
}

const bucketCount = hanzi.MaxStrokeCount
