package sketch

import (
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/hanzi"
	"github.com/stretchr/testify/require"
)

func corner() *hanzi.WrittenCharacter {
	ch := hanzi.NewWrittenCharacter()
	s, _ := hanzi.NewStroke([]hanzi.Point{
		hanzi.Pt(0, 0), hanzi.Pt(50, 0), hanzi.Pt(100, 0),
		hanzi.Pt(100, 50), hanzi.Pt(100, 100),
	})
	ch.AddStroke(s)
	return ch
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 8 || y-x <= 8 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func count(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if near(img.RGBAAt(x, y), c) {
				n++
			}
		}
	}
	return n
}

func TestRenderEmpty(t *testing.T) {
	img := Render(hanzi.NewWrittenCharacter(), 64)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
	require.Equal(t, 64*64, count(img, Background))
}

func TestRenderCorner(t *testing.T) {
	ch := corner()
	img := Render(ch, 128)
	require.True(t, ch.Strokes()[0].IsAnalyzed())
	require.Greater(t, count(img, SubStroke), 0)
	require.Greater(t, count(img, PivotColor), 0)
	require.Less(t, count(img, Background), 128*128)
	// the corner pivot sits at the top right of the fitted box
	side := 128.0
	x, y := int(side*(1-Margin)), int(side*Margin)
	require.True(t, near(PivotColor, img.RGBAAt(x, y)), "pixel at %d,%d is %v", x, y, img.RGBAAt(x, y))
}

func TestRenderMinimumSize(t *testing.T) {
	img := Render(corner(), 1)
	require.Equal(t, 16, img.Bounds().Dx())
}
