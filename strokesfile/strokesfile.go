/*
Package strokesfile reads reference stroke data in the plain-text corpus format.

Each non-comment line describes one character:

	4e00 | (0.0,0.9)
	4e8c | (0.0,0.5) | (0.0,0.9)
	53e3 | (4.71,0.5) | (0.0,0.6)#(4.71,0.5) | (0.0,0.6)

The code point comes first, as four hex digits. Strokes are separated by '|',
the sub-strokes of a stroke by '#'. A sub-stroke is a (direction, length) pair,
direction in radians [0, 2π], length normalized to [0, 1].

Blank lines and lines starting with "//" or "#" are skipped. Malformed lines are
reported as *hanzi.LineError, and reading may continue after them.
*/
package strokesfile

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tracer writes to trace with key 'hanzi.corpus'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.corpus")
}

const maxLineLength = 1 << 20

// directionSlack tolerates rounding of 2π in corpus data.
const directionSlack = 1e-4

var (
	linePattern      = regexp.MustCompile(`^([0-9a-fA-F]{4})\s*\|(.*)$`)
	subStrokePattern = regexp.MustCompile(`^\s*\((\d+(\.\d{1,10})?)\s*,\s*(\d+(\.\d{1,10})?)\)\s*$`)
	skipPattern      = regexp.MustCompile(`^\s*(//|#|$)`)
)

// Reader streams character entries from a strokes corpus.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	entries int
}

// NewReader creates a reader for corpus data. Input is expected in UTF-8,
// a byte order mark switches to UTF-16 if present.
func NewReader(reader io.Reader) *Reader {
	decoded := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &Reader{scanner: scanner}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Entries returns the number of entries successfully read so far.
func (r *Reader) Entries() int {
	return r.entries
}

// Next returns the next character entry.
// It returns io.EOF when exhausted, and a *hanzi.LineError for a malformed line.
func (r *Reader) Next() (hanzi.StrokeEntry, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if skipPattern.MatchString(line) {
			continue
		}
		entry, reason := parseLine(line)
		if reason != "" {
			return hanzi.StrokeEntry{}, &hanzi.LineError{Line: r.line, Text: line, Reason: reason}
		}
		entry.Line, entry.Text = r.line, line
		r.entries++
		return entry, nil
	}
	if err := r.scanner.Err(); err != nil {
		return hanzi.StrokeEntry{}, err
	}
	tracer().Debugf("strokes corpus exhausted after %d lines, %d entries", r.line, r.entries)
	return hanzi.StrokeEntry{}, io.EOF
}

// parseLine decodes one corpus line. A non-empty reason signals failure.
func parseLine(line string) (entry hanzi.StrokeEntry, reason string) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return entry, "malformed line"
	}
	cp, _ := strconv.ParseUint(m[1], 16, 16) // pattern guarantees 4 hex digits
	entry.Character = rune(cp)
	subStrokeCount := 0
	for _, strokeText := range strings.Split(m[2], "|") {
		if strokeText == "" {
			continue
		}
		if len(entry.Strokes) >= hanzi.MaxStrokeCount {
			return entry, "too many strokes"
		}
		stroke := make([]hanzi.SubStroke, 0, 2)
		for _, subText := range strings.Split(strokeText, "#") {
			if subText == "" {
				continue
			}
			if subStrokeCount >= hanzi.MaxSubStrokeCount {
				return entry, "too many sub-strokes"
			}
			sub, reason := parseSubStroke(subText)
			if reason != "" {
				return entry, reason
			}
			stroke = append(stroke, sub)
			subStrokeCount++
		}
		if len(stroke) == 0 {
			return entry, "stroke without sub-strokes"
		}
		entry.Strokes = append(entry.Strokes, stroke)
	}
	if len(entry.Strokes) == 0 {
		return entry, "character without strokes"
	}
	return entry, ""
}

func parseSubStroke(text string) (hanzi.SubStroke, string) {
	m := subStrokePattern.FindStringSubmatch(text)
	if m == nil {
		return hanzi.SubStroke{}, "malformed sub-stroke"
	}
	direction, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return hanzi.SubStroke{}, "malformed direction"
	}
	length, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return hanzi.SubStroke{}, "malformed length"
	}
	if direction > 2*math.Pi+directionSlack {
		return hanzi.SubStroke{}, "direction out of range"
	}
	if length > 1 {
		return hanzi.SubStroke{}, "length out of range"
	}
	return hanzi.SubStroke{Direction: direction, Length: length}, ""
}
