package store

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/npillmayer/hanzi"
)

// Filter selects the buckets a Scanner visits. The generic partition is
// always included.
type Filter struct {
	Simplified  bool // include simplified characters
	Traditional bool // include traditional characters
	MinStrokes  int  // clamped to 1..48
	MaxStrokes  int  // clamped to 1..48
}

// AllStrokes returns a filter over every stroke count and partition.
func AllStrokes() Filter {
	return Filter{
		Simplified:  true,
		Traditional: true,
		MinStrokes:  1,
		MaxStrokes:  hanzi.MaxStrokeCount,
	}
}

func (f Filter) includes(p Partition) bool {
	switch p {
	case SimplifiedPartition:
		return f.Simplified
	case TraditionalPartition:
		return f.Traditional
	}
	return true
}

func (f Filter) clamped() (lo, hi int) {
	lo, hi = clamp(f.MinStrokes), clamp(f.MaxStrokes)
	return
}

func clamp(n int) int {
	return min(max(n, 1), hanzi.MaxStrokeCount)
}

// Scanner streams the reference descriptors of a Store selected by a Filter.
// Buckets are visited partition by partition, generic first, and by
// increasing stroke count within a partition.
//
// A Scanner is not safe for concurrent use; use one Scanner per goroutine.
type Scanner struct {
	st        *Store
	filter    Filter
	lo, hi    int
	part      Partition
	strokes   int   // stroke count of the current bucket
	remaining int64 // bytes left in the current bucket
	open      bool
	r         *bufio.Reader
	dec       recordDecoder
	d         hanzi.CharacterDescriptor
	err       error
}

// Scan starts a scan over the buckets selected by f.
func (st *Store) Scan(f Filter) *Scanner {
	sc := &Scanner{st: st, filter: f}
	sc.lo, sc.hi = f.clamped()
	sc.part = GenericPartition
	sc.strokes = sc.lo - 1
	return sc
}

// Descriptors is Scan for clients which consume any hanzi.DescriptorReader.
func (st *Store) Descriptors(f Filter) hanzi.DescriptorReader {
	return st.Scan(f)
}

// Next returns the next reference descriptor. The descriptor is owned by the
// scanner and overwritten by the following call to Next. At the end of the
// selected buckets Next returns io.EOF; for corrupt data it returns an error
// wrapping ErrCorruptStore.
func (sc *Scanner) Next() (*hanzi.CharacterDescriptor, error) {
	if sc.err != nil {
		return nil, sc.err
	}
	for !sc.open || sc.remaining == 0 {
		if !sc.advance() {
			sc.err = io.EOF
			return nil, io.EOF
		}
		if err := sc.openBucket(); err != nil {
			sc.err = err
			return nil, err
		}
	}
	n, err := sc.dec.decode(sc.r, &sc.d, sc.strokes, sc.remaining)
	if err != nil {
		sc.err = err
		return nil, err
	}
	sc.remaining -= n
	return &sc.d, nil
}

// advance moves to the next selected bucket.
func (sc *Scanner) advance() bool {
	sc.open = false
	for sc.part < partitionCount {
		if sc.filter.includes(sc.part) && sc.strokes < sc.hi {
			sc.strokes++
			return true
		}
		sc.part++
		sc.strokes = sc.lo - 1
	}
	return false
}

// openBucket positions the reader at the current bucket and cross-checks its
// length prefix against the index.
func (sc *Scanner) openBucket() error {
	p, s := sc.part, sc.strokes-1
	offset, length := sc.st.offsets[p][s], sc.st.lengths[p][s]
	section := io.NewSectionReader(sc.st.src, offset-4, int64(length)+4)
	if sc.r == nil {
		sc.r = bufio.NewReaderSize(section, 8192)
	} else {
		sc.r.Reset(section)
	}
	var prefix [4]byte
	if _, err := io.ReadFull(sc.r, prefix[:]); err != nil {
		return truncated(err)
	}
	if got := int32(binary.BigEndian.Uint32(prefix[:])); got != length {
		return corrupt("length of bucket %s/%d changed from %d to %d", p, sc.strokes, length, got)
	}
	sc.remaining = int64(length)
	sc.open = true
	tracer().Debugf("scanning bucket %s/%d, %d bytes", p, sc.strokes, length)
	return nil
}
