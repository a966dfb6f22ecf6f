package store

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/derekparker/trie"
	"github.com/npillmayer/hanzi"
)

// ErrDuplicate is returned when a character is added to a compiler twice.
var ErrDuplicate = errors.New("duplicate character")

// Stats reports what a compiler has collected.
type Stats struct {
	Characters [partitionCount]int // per partition
	Rejected   int                 // corpus lines or entries not compiled
}

// Total returns the number of compiled characters.
func (s Stats) Total() int {
	return s.Characters[GenericPartition] + s.Characters[SimplifiedPartition] +
		s.Characters[TraditionalPartition]
}

// Compiler collects reference characters in memory, bucketed by partition
// and stroke count, and writes them out in the binary store layout.
type Compiler struct {
	registry *hanzi.Registry
	buckets  [partitionCount][bucketCount][]byte
	seen     *trie.Trie // hex code point → line of first definition
	stats    Stats
}

// NewCompiler creates a compiler which types characters by reg. reg may be
// nil, in which case every character is compiled as generic.
func NewCompiler(reg *hanzi.Registry) *Compiler {
	return &Compiler{
		registry: reg,
		seen:     trie.New(),
	}
}

// Stats returns the statistics collected so far.
func (c *Compiler) Stats() Stats {
	return c.stats
}

// Add compiles one reference character. Its type is taken from the registry;
// characters unknown to the registry are compiled as generic, so that they are
// found by every search.
func (c *Compiler) Add(entry hanzi.StrokeEntry) error {
	key := fmt.Sprintf("%04x", entry.Character)
	if node, found := c.seen.Find(key); found {
		c.stats.Rejected++
		return fmt.Errorf("%w U+%04X (first defined at line %v)", ErrDuplicate, entry.Character, node.Meta())
	}
	t := c.registry.EffectiveType(entry.Character)
	if t == hanzi.NotFound {
		t = hanzi.Generic
	}
	p := partitionOf(t)
	strokes := len(entry.Strokes)
	if strokes < 1 || strokes > hanzi.MaxStrokeCount {
		c.stats.Rejected++
		return fmt.Errorf("U+%04X: stroke count out of range (1..%d): %d",
			entry.Character, hanzi.MaxStrokeCount, strokes)
	}
	buf, err := appendRecord(c.buckets[p][strokes-1], entry.Character, t, entry.Strokes)
	if err != nil {
		c.stats.Rejected++
		return fmt.Errorf("U+%04X: %w", entry.Character, err)
	}
	if len(buf) > math.MaxInt32 {
		c.stats.Rejected++
		return fmt.Errorf("U+%04X: bucket %s/%d exceeds maximum size", entry.Character, p, strokes)
	}
	c.buckets[p][strokes-1] = buf
	c.seen.Add(key, entry.Line)
	c.stats.Characters[p]++
	return nil
}

// Compile adds every entry of reader. Malformed lines and entries which cannot
// be compiled are reported to onError (which may be nil) and skipped. Read
// errors other than line errors abort compilation.
func (c *Compiler) Compile(reader hanzi.StrokesReader, onError func(*hanzi.LineError)) error {
	for {
		entry, err := reader.Next()
		if err == io.EOF {
			break
		}
		if lerr, ok := hanzi.AsLineError(err); ok {
			c.stats.Rejected++
			c.report(lerr, onError)
			continue
		}
		if err != nil {
			return err
		}
		if err = c.Add(entry); err != nil {
			text := entry.Text
			if text == "" {
				text = fmt.Sprintf("%04x", entry.Character)
			}
			c.report(&hanzi.LineError{
				Line:   entry.Line,
				Text:   text,
				Reason: err.Error(),
			}, onError)
		}
	}
	tracer().Infof("compiled %d characters (generic=%d simplified=%d traditional=%d), %d rejected",
		c.stats.Total(), c.stats.Characters[GenericPartition],
		c.stats.Characters[SimplifiedPartition], c.stats.Characters[TraditionalPartition],
		c.stats.Rejected)
	return nil
}

func (c *Compiler) report(lerr *hanzi.LineError, onError func(*hanzi.LineError)) {
	tracer().Infof("error parsing %s", lerr)
	if onError != nil {
		onError(lerr)
	}
}

// WriteTo writes the compiled store to w: generic, simplified and traditional
// partitions, each with its buckets for 1..48 strokes.
func (c *Compiler) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	var prefix [4]byte
	for p := range partitionCount {
		for s := range bucketCount {
			bucket := c.buckets[p][s]
			binary.BigEndian.PutUint32(prefix[:], uint32(len(bucket)))
			n, err := bw.Write(prefix[:])
			written += int64(n)
			if err != nil {
				return written, err
			}
			n, err = bw.Write(bucket)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	return written, bw.Flush()
}

// Bytes returns the compiled store as a byte slice.
func (c *Compiler) Bytes() []byte {
	size := 4 * int(partitionCount) * bucketCount
	for p := range partitionCount {
		for s := range bucketCount {
			size += len(c.buckets[p][s])
		}
	}
	out := make([]byte, 0, size)
	var prefix [4]byte
	for p := range partitionCount {
		for s := range bucketCount {
			binary.BigEndian.PutUint32(prefix[:], uint32(len(c.buckets[p][s])))
			out = append(out, prefix[:]...)
			out = append(out, c.buckets[p][s]...)
		}
	}
	return out
}
