package hanzi

import "math"

// WrittenCharacter is a character as drawn by a user: a sequence of strokes
// plus the bounding box of all their points, which is used to normalize
// sub-stroke lengths, so that a character may be written in any size.
type WrittenCharacter struct {
	strokes []*WrittenStroke
	leftX   float64
	rightX  float64
	topY    float64
	bottomY float64
}

// NewWrittenCharacter creates an empty character.
func NewWrittenCharacter() *WrittenCharacter {
	c := &WrittenCharacter{}
	c.resetBounds()
	return c
}

// Strokes returns the strokes in writing order.
func (c *WrittenCharacter) Strokes() []*WrittenStroke {
	return c.strokes
}

// StrokeCount returns the number of strokes.
func (c *WrittenCharacter) StrokeCount() int {
	return len(c.strokes)
}

// AddStroke appends a stroke and expands the bounding box by its points.
func (c *WrittenCharacter) AddStroke(s *WrittenStroke) {
	c.strokes = append(c.strokes, s)
	c.expandBounds(s)
}

// Undo drops the last stroke, if any. The bounding box shrinks to the
// remaining strokes.
func (c *WrittenCharacter) Undo() {
	if len(c.strokes) == 0 {
		return
	}
	c.strokes[len(c.strokes)-1] = nil
	c.strokes = c.strokes[:len(c.strokes)-1]
	c.resetBounds()
	for _, s := range c.strokes {
		c.expandBounds(s)
	}
}

// Clear removes all strokes.
func (c *WrittenCharacter) Clear() {
	c.strokes = c.strokes[:0]
	c.resetBounds()
}

// Bounds returns the bounding box of all points. For an empty character the
// box is inverted: left = top = +Inf, right = bottom = -Inf.
func (c *WrittenCharacter) Bounds() (leftX, topY, rightX, bottomY float64) {
	return c.leftX, c.topY, c.rightX, c.bottomY
}

func (c *WrittenCharacter) resetBounds() {
	c.leftX = math.Inf(1)
	c.rightX = math.Inf(-1)
	c.topY = math.Inf(1)
	c.bottomY = math.Inf(-1)
}

func (c *WrittenCharacter) expandBounds(s *WrittenStroke) {
	for _, p := range s.points {
		x, y := float64(p.X), float64(p.Y)
		c.leftX = math.Min(c.leftX, x)
		c.rightX = math.Max(c.rightX, x)
		c.topY = math.Min(c.topY, y)
		c.bottomY = math.Max(c.bottomY, y)
	}
}

// NormalizedDistance returns the distance between p and q divided by the
// diagonal of a square with sides of the larger dimension of the bounding box,
// capped at 1.0. A degenerate box (a single point) yields 0.
func (c *WrittenCharacter) NormalizedDistance(p, q Point) float64 {
	width := c.rightX - c.leftX
	height := c.bottomY - c.topY
	side := math.Max(width, height)
	if !(side > 0) || math.IsInf(side, 0) {
		return 0
	}
	normalizer := math.Sqrt(2 * side * side)
	return math.Min(p.Distance(q)/normalizer, 1.0)
}

// Analyze segments every stroke not yet analyzed.
func (c *WrittenCharacter) Analyze() {
	for _, s := range c.strokes {
		s.Analyze()
	}
}

// Descriptor builds the descriptor of the character. Sub-strokes of all
// strokes are lumped together in writing order; once MaxSubStrokeCount
// sub-strokes are filled, the rest is silently dropped. StrokeCount is the
// literal number of strokes, even if sub-strokes have been truncated.
func (c *WrittenCharacter) Descriptor() *CharacterDescriptor {
	d := &CharacterDescriptor{}
	c.DescriptorInto(d)
	return d
}

// DescriptorInto is like Descriptor but fills an existing descriptor.
func (c *WrittenCharacter) DescriptorInto(d *CharacterDescriptor) {
	d.Reset()
	d.StrokeCount = len(c.strokes)
	for _, s := range c.strokes {
		if d.SubStrokeCount >= MaxSubStrokeCount {
			tracer().Debugf("descriptor full, truncating after %d sub-strokes", d.SubStrokeCount)
			break
		}
		for _, sub := range s.SubStrokes(c) {
			if !d.Append(sub) {
				break
			}
		}
	}
}
