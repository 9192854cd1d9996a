package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is a rasterized glyph placed on a texture. Pixels is tightly packed
// RGBA, 4 bytes per pixel, Width*Height*4 bytes total.
type Glyph struct {
	X, Y          uint32
	Width, Height uint32
	Pixels        []byte
}

// alphaCutoff drops faint anti-aliasing fringe pixels to fully transparent so
// overlay compositing does not darken the background.
const alphaCutoff = 10

// LayoutString rasterizes and places every glyph of the input against a
// texture of the given dimensions. The full string is validated before
// anything is returned: if any glyph's ascent rises above the baseline origin
// or any glyph rectangle falls outside the texture, ErrExceedsBounds is
// returned and no placements are produced.
//
// Parameters:
//   - input: the string draw request (nil Font selects the default font)
//   - texWidth, texHeight: target texture dimensions in pixels
//   - swapRB: true when the target texture uses a BGRA channel order
//
// Returns:
//   - []Glyph: one placement per visible rune, in draw order
//   - error: ErrFontLoad, ErrGlyphOutline or ErrExceedsBounds
func LayoutString(input StringInput, texWidth, texHeight uint32, swapRB bool) ([]Glyph, error) {
	fnt := input.Font
	if fnt == nil {
		var err error
		fnt, err = DefaultFont()
		if err != nil {
			return nil, err
		}
	}

	color := input.Color
	if swapRB {
		color[0], color[2] = color[2], color[0]
	}

	face, err := opentype.NewFace(fnt.sfnt, &opentype.FaceOptions{
		Size:    input.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	defer face.Close()

	var glyphs []Glyph
	offset := uint32(0)
	for _, r := range input.Text {
		if r == ' ' || r == '\n' || r == '\t' {
			offset += input.CharGap * 3
			continue
		}

		g, ascent, err := rasterizeGlyph(face, r, color)
		if err != nil {
			return nil, err
		}

		if ascent > input.BasePoint[1] {
			return nil, fmt.Errorf("%w: glyph %q ascent %d above baseline %d", ErrExceedsBounds, r, ascent, input.BasePoint[1])
		}
		g.X = input.BasePoint[0] + offset
		g.Y = input.BasePoint[1] - ascent
		if g.X+g.Width > texWidth || g.Y+g.Height > texHeight {
			return nil, fmt.Errorf("%w: glyph %q at (%d, %d) size %dx%d on %dx%d texture", ErrExceedsBounds, r, g.X, g.Y, g.Width, g.Height, texWidth, texHeight)
		}

		offset += g.Width + input.CharGap
		glyphs = append(glyphs, g)
	}

	return glyphs, nil
}

// rasterizeGlyph renders a single rune through the face into a tightly packed
// RGBA buffer. The returned ascent is how far the glyph rises above the
// baseline, in whole pixels.
func rasterizeGlyph(face font.Face, r rune, color [3]uint8) (Glyph, uint32, error) {
	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return Glyph{}, 0, fmt.Errorf("%w: %q", ErrGlyphOutline, r)
	}

	width := int(bounds.Max.X-bounds.Min.X+63) >> 6
	height := int(bounds.Max.Y-bounds.Min.Y+63) >> 6
	if width <= 0 || height <= 0 {
		return Glyph{}, 0, fmt.Errorf("%w: %q has empty bounds", ErrGlyphOutline, r)
	}
	ascent := uint32(0)
	if bounds.Min.Y < 0 {
		ascent = uint32(int(-bounds.Min.Y) >> 6)
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	pixels := make([]byte, width*height*4)
	for i, a := range mask.Pix {
		if a < alphaCutoff {
			continue
		}
		pixels[i*4+0] = color[0]
		pixels[i*4+1] = color[1]
		pixels[i*4+2] = color[2]
		pixels[i*4+3] = a
	}

	return Glyph{Width: uint32(width), Height: uint32(height), Pixels: pixels}, ascent, nil
}
