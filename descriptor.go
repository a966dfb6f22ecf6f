package hanzi

import "fmt"

// Capacities of a CharacterDescriptor. Characters with more strokes or
// sub-strokes are truncated.
const (
	MaxStrokeCount    = 48
	MaxSubStrokeCount = 64
)

// SubStroke is a straight-line-equivalent piece of a stroke.
// Direction is in radians, Length is normalized to [0,1].
type SubStroke struct {
	Direction float64
	Length    float64
}

func (s SubStroke) String() string {
	return fmt.Sprintf("(%.4f,%.4f)", s.Direction, s.Length)
}

// CharacterDescriptor is the flattened, fixed-capacity representation of a
// character's sub-strokes. Stroke boundaries are not preserved.
//
// Descriptors are reused when scanning a store, so clients that keep one
// beyond the next scan step must copy it.
type CharacterDescriptor struct {
	Character      rune          // reference character; zero for written input
	HasCharacter   bool          // Character is set
	Type           CharacterType // type of a reference character
	StrokeCount    int
	SubStrokeCount int
	Directions     [MaxSubStrokeCount]float64
	Lengths        [MaxSubStrokeCount]float64
}

// Reset clears the descriptor for reuse.
func (d *CharacterDescriptor) Reset() {
	d.Character = 0
	d.HasCharacter = false
	d.Type = Generic
	d.StrokeCount = 0
	d.SubStrokeCount = 0
}

// Append adds a sub-stroke. It returns false, without adding, if the
// descriptor is full.
func (d *CharacterDescriptor) Append(s SubStroke) bool {
	if d.SubStrokeCount >= MaxSubStrokeCount {
		return false
	}
	d.Directions[d.SubStrokeCount] = s.Direction
	d.Lengths[d.SubStrokeCount] = s.Length
	d.SubStrokeCount++
	return true
}

// SubStroke returns sub-stroke i, 0 ≤ i < SubStrokeCount.
func (d *CharacterDescriptor) SubStroke(i int) SubStroke {
	return SubStroke{Direction: d.Directions[i], Length: d.Lengths[i]}
}

// SubStrokes returns a copy of the descriptor's sub-strokes.
func (d *CharacterDescriptor) SubStrokes() []SubStroke {
	subs := make([]SubStroke, d.SubStrokeCount)
	for i := range subs {
		subs[i] = d.SubStroke(i)
	}
	return subs
}

// CopyFrom overwrites d with the contents of src.
func (d *CharacterDescriptor) CopyFrom(src *CharacterDescriptor) {
	*d = *src
}

func (d *CharacterDescriptor) String() string {
	ch := "?"
	if d.HasCharacter {
		ch = fmt.Sprintf("%c U+%04X", d.Character, d.Character)
	}
	return fmt.Sprintf("descriptor[%s %s strokes=%d substrokes=%d]",
		ch, d.Type, d.StrokeCount, d.SubStrokeCount)
}
