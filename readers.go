package hanzi

import (
	"errors"
	"fmt"
)

// StrokeEntry is one reference character of a strokes corpus: its code
// point and, per stroke, the sub-strokes of that stroke.
type StrokeEntry struct {
	Character rune
	Strokes   [][]SubStroke
	Line      int    // line number in the source, 1-based; 0 if unknown
	Text      string // content of the source line, if any
}

// SubStrokeCount returns the total number of sub-strokes over all strokes.
func (e StrokeEntry) SubStrokeCount() int {
	n := 0
	for _, s := range e.Strokes {
		n += len(s)
	}
	return n
}

// StrokesReader yields reference corpus entries one-by-one.
// It should return io.EOF when the stream is exhausted.
//
// A *LineError reports a single malformed line; clients may keep calling
// Next after it.
type StrokesReader interface {
	Next() (StrokeEntry, error)
}

// TypesReader yields type relationship entries one-by-one.
// It should return io.EOF when the stream is exhausted.
//
// A *LineError reports a single malformed line; clients may keep calling
// Next after it.
type TypesReader interface {
	Next() (TypeDescriptor, error)
}

// DescriptorReader yields reference descriptors one-by-one.
// It should return io.EOF when the stream is exhausted. The descriptor
// returned may be overwritten by the next call to Next.
type DescriptorReader interface {
	Next() (*CharacterDescriptor, error)
}

// LineError is a recoverable parse error confined to one input line.
type LineError struct {
	Line   int    // 1-based line number
	Text   string // content of the line
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// AsLineError checks if err is, or wraps, a *LineError.
func AsLineError(err error) (*LineError, bool) {
	var lerr *LineError
	if err != nil && errors.As(err, &lerr) {
		return lerr, true
	}
	return nil, false
}

func reportLineError(lerr *LineError, onError func(*LineError)) {
	tracer().Infof("error parsing %s", lerr)
	if onError != nil {
		onError(lerr)
	}
}
