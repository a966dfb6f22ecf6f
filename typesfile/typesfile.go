/*
Package typesfile reads character type relationships in their plain-text format.

Each non-comment line carries a code point, a type code and, for types other
than generic, the code point of the related character:

	4e00 | 0
	6c49 | 1 | 6f22
	6f22 | 2 | 6c49
	4e3c | 3 | 4e95

Type codes are 0 (generic), 1 (simplified), 2 (traditional) and 3 (equivalent).
Blank lines and lines starting with "//" or "#" are skipped. Malformed lines are
reported as *hanzi.LineError, and reading may continue after them.
*/
package typesfile

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"github.com/npillmayer/hanzi"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	linePattern = regexp.MustCompile(`^([a-f0-9]{4})\s*\|\s*(\d)(\s*\|\s*([a-f0-9]{4}))?\s*$`)
	skipPattern = regexp.MustCompile(`^\s*(//|#|$)`)
)

// Reader streams type descriptors from a type relationship file.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// Load parses type relationship data and returns a type registry.
// onError, if not nil, is called for every malformed line.
func Load(reader io.Reader, onError func(*hanzi.LineError)) (*hanzi.Registry, error) {
	return hanzi.LoadTypes(NewReader(reader), onError)
}

// NewReader creates a reader for type relationship data, UTF-8 or, with a
// byte order mark, UTF-16.
func NewReader(reader io.Reader) *Reader {
	decoded := transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return &Reader{
		scanner: bufio.NewScanner(decoded),
	}
}

// Next returns the next type descriptor.
// It returns io.EOF when exhausted, and a *hanzi.LineError for a malformed line.
func (r *Reader) Next() (hanzi.TypeDescriptor, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if skipPattern.MatchString(line) {
			continue
		}
		td, reason := parseLine(line)
		if reason != "" {
			return td, &hanzi.LineError{Line: r.line, Text: line, Reason: reason}
		}
		return td, nil
	}
	if err := r.scanner.Err(); err != nil {
		return hanzi.TypeDescriptor{}, err
	}
	return hanzi.TypeDescriptor{}, io.EOF
}

func parseLine(line string) (td hanzi.TypeDescriptor, reason string) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return td, "malformed line"
	}
	cp, _ := strconv.ParseUint(m[1], 16, 16)
	code, _ := strconv.Atoi(m[2])
	t, err := hanzi.ParseCharacterType(code)
	if err != nil {
		return td, err.Error()
	}
	td.Unicode = rune(cp)
	td.Type = t
	if !t.NeedsAlternate() {
		return td, "" // alternate of a generic character is meaningless
	}
	if m[4] == "" {
		return td, "missing alternate code point"
	}
	alt, _ := strconv.ParseUint(m[4], 16, 16)
	td.AltUnicode = rune(alt)
	return td, ""
}
