package store

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/hanzi"
)

const (
	recordHeaderSize = 4 // code point, type, stroke count
	subStrokeSize    = 4 // direction, length
	fixedMax         = math.MaxUint16
)

// encodeDirection maps [0, 2π] onto the full uint16 range.
func encodeDirection(direction float64) uint16 {
	return toFixed(direction / (2 * math.Pi))
}

func decodeDirection(v uint16) float64 {
	return float64(v) / fixedMax * 2 * math.Pi
}

// encodeLength maps [0, 1] onto the full uint16 range.
func encodeLength(length float64) uint16 {
	return toFixed(length)
}

func decodeLength(v uint16) float64 {
	return float64(v) / fixedMax
}

func toFixed(fraction float64) uint16 {
	v := math.Round(fraction * fixedMax)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= fixedMax {
		return fixedMax
	}
	return uint16(v)
}

// appendRecord appends the binary record of a character to buf.
func appendRecord(buf []byte, ch rune, t hanzi.CharacterType, strokes [][]hanzi.SubStroke) ([]byte, error) {
	if ch < 0 || ch > 0xFFFF {
		return buf, fmt.Errorf("code point U+%X outside the BMP", ch)
	}
	if len(strokes) == 0 || len(strokes) > hanzi.MaxStrokeCount {
		return buf, fmt.Errorf("stroke count out of range (1..%d): %d", hanzi.MaxStrokeCount, len(strokes))
	}
	total := 0
	for _, s := range strokes {
		if len(s) == 0 {
			return buf, fmt.Errorf("stroke without sub-strokes")
		}
		total += len(s)
	}
	if total > hanzi.MaxSubStrokeCount {
		return buf, fmt.Errorf("sub-stroke count out of range (1..%d): %d", hanzi.MaxSubStrokeCount, total)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(ch))
	buf = append(buf, byte(t), byte(len(strokes)))
	for _, s := range strokes {
		buf = append(buf, byte(len(s)))
	}
	for _, s := range strokes {
		for _, sub := range s {
			buf = binary.BigEndian.AppendUint16(buf, encodeDirection(sub.Direction))
			buf = binary.BigEndian.AppendUint16(buf, encodeLength(sub.Length))
		}
	}
	return buf, nil
}

// recordDecoder reads records into a reusable descriptor.
type recordDecoder struct {
	perStroke [hanzi.MaxStrokeCount]byte
	scratch   [subStrokeSize * hanzi.MaxSubStrokeCount]byte
}

// decode reads one record of a bucket for strokeCount strokes, with at most
// limit bytes left in the bucket. It returns the number of bytes consumed.
func (dec *recordDecoder) decode(r *bufio.Reader, d *hanzi.CharacterDescriptor,
	strokeCount int, limit int64) (int64, error) {
	//
	var header [recordHeaderSize]byte
	if limit < recordHeaderSize {
		return 0, corrupt("record header overruns bucket")
	}
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, truncated(err)
	}
	n := int(header[3])
	if n != strokeCount {
		return 0, corrupt("record with %d strokes in bucket for %d strokes", n, strokeCount)
	}
	consumed := int64(recordHeaderSize + n)
	if consumed > limit {
		return 0, corrupt("stroke table overruns bucket")
	}
	perStroke := dec.perStroke[:n]
	if _, err := io.ReadFull(r, perStroke); err != nil {
		return 0, truncated(err)
	}
	total := 0
	for _, c := range perStroke {
		total += int(c)
	}
	if total > hanzi.MaxSubStrokeCount {
		return 0, corrupt("record with %d sub-strokes", total)
	}
	consumed += int64(subStrokeSize * total)
	if consumed > limit {
		return 0, corrupt("sub-strokes overrun bucket")
	}
	raw := dec.scratch[:subStrokeSize*total]
	if _, err := io.ReadFull(r, raw); err != nil {
		return 0, truncated(err)
	}
	d.Reset()
	d.Character = rune(binary.BigEndian.Uint16(header[0:2]))
	d.HasCharacter = true
	d.Type = hanzi.CharacterType(int8(header[2]))
	d.StrokeCount = n
	for i := 0; i < total; i++ {
		d.Append(hanzi.SubStroke{
			Direction: decodeDirection(binary.BigEndian.Uint16(raw[4*i:])),
			Length:    decodeLength(binary.BigEndian.Uint16(raw[4*i+2:])),
		})
	}
	return consumed, nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return corrupt("truncated record")
	}
	return err
}
