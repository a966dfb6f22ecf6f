// Package sketch renders segmented written characters, to check visually how
// the segmentation thresholds split strokes into sub-strokes.
package sketch

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/npillmayer/hanzi"
	"golang.org/x/image/vector"
)

// Colors of a sketch.
var (
	Background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	InkColor   = color.RGBA{0xc0, 0xc0, 0xc0, 0xff} // pen trail
	SubStroke  = color.RGBA{0x20, 0x40, 0xa0, 0xff} // straight sub-strokes
	PivotColor = color.RGBA{0xd0, 0x20, 0x20, 0xff}
)

// Margin is the border around the character, as a fraction of the image size.
const Margin = 0.1

// Render draws ch into a size × size image: the pen trail of every stroke,
// the straight sub-strokes between pivots over it, and the pivots as dots.
// Strokes are analyzed if necessary. The character is scaled uniformly to
// fit the image.
func Render(ch *hanzi.WrittenCharacter, size int) *image.RGBA {
	size = max(size, 16)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if ch.StrokeCount() == 0 {
		return img
	}
	ch.Analyze()
	t := fit(ch, size)
	pen := float32(size) / 128
	for _, s := range ch.Strokes() {
		pts := s.Points()
		trail := newLayer(size)
		for i := 1; i < len(pts); i++ {
			trail.line(t.apply(pts[i-1].Point), t.apply(pts[i].Point), pen)
		}
		trail.paint(img, InkColor)
		subs := newLayer(size)
		prev := pts[0].Point
		for _, p := range pts[1:] {
			if p.IsPivot {
				subs.line(t.apply(prev), t.apply(p.Point), pen*1.5)
				prev = p.Point
			}
		}
		subs.paint(img, SubStroke)
		pivots := newLayer(size)
		for _, p := range pts {
			if p.IsPivot {
				pivots.dot(t.apply(p.Point), pen*3)
			}
		}
		pivots.paint(img, PivotColor)
	}
	return img
}

type transform struct {
	scale, dx, dy float64
}

// fit maps the bounding box of ch into the image, aspect ratio preserved,
// centered.
func fit(ch *hanzi.WrittenCharacter, size int) transform {
	left, top, right, bottom := ch.Bounds()
	w, h := right-left, bottom-top
	inner := float64(size) * (1 - 2*Margin)
	side := math.Max(w, h)
	scale := 1.0
	if side > 0 {
		scale = inner / side
	}
	return transform{
		scale: scale,
		dx:    (float64(size)-w*scale)/2 - left*scale,
		dy:    (float64(size)-h*scale)/2 - top*scale,
	}
}

type fpoint struct {
	x, y float32
}

func (t transform) apply(p hanzi.Point) fpoint {
	return fpoint{
		x: float32(float64(p.X)*t.scale + t.dx),
		y: float32(float64(p.Y)*t.scale + t.dy),
	}
}

// layer collects filled shapes of one color.
type layer struct {
	z     *vector.Rasterizer
	empty bool
}

func newLayer(size int) *layer {
	return &layer{z: vector.NewRasterizer(size, size), empty: true}
}

// line adds a line of the given width as a filled quad.
func (l *layer) line(a, b fpoint, width float32) {
	dx, dy := b.x-a.x, b.y-a.y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		l.dot(a, width/2)
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	l.z.MoveTo(a.x+nx, a.y+ny)
	l.z.LineTo(b.x+nx, b.y+ny)
	l.z.LineTo(b.x-nx, b.y-ny)
	l.z.LineTo(a.x-nx, a.y-ny)
	l.z.ClosePath()
	l.empty = false
}

// dot adds a filled octagon of radius r.
func (l *layer) dot(c fpoint, r float32) {
	for i := range 8 {
		a := float64(i) * math.Pi / 4
		px, py := c.x+r*float32(math.Cos(a)), c.y+r*float32(math.Sin(a))
		if i == 0 {
			l.z.MoveTo(px, py)
		} else {
			l.z.LineTo(px, py)
		}
	}
	l.z.ClosePath()
	l.empty = false
}

func (l *layer) paint(dst *image.RGBA, c color.Color) {
	if l.empty {
		return
	}
	l.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
