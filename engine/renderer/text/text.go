// package text rasterizes strings directly onto renderer textures. Glyphs are
// rendered one at a time through an opentype face and composited as RGBA
// rectangles; there is no shaping, kerning or line wrapping. The intended use
// is HUD and label text on overlay textures.
package text

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	// ErrFontNotFound indicates a font file could not be read from disk.
	ErrFontNotFound = errors.New("text: font file not found")

	// ErrFontLoad indicates font data could not be parsed.
	ErrFontLoad = errors.New("text: failed to parse font data")

	// ErrGlyphOutline indicates the font has no outline for a requested rune.
	ErrGlyphOutline = errors.New("text: no glyph outline for rune")

	// ErrExceedsBounds indicates the laid-out string does not fit the target
	// texture. Nothing is written when this is returned.
	ErrExceedsBounds = errors.New("text: string exceeds texture bounds")
)

// StringInput describes a string draw request against a texture.
type StringInput struct {
	// Text is the string to draw. Spaces, tabs and newlines advance the pen
	// by three times CharGap without drawing.
	Text string
	// Size is the font size in pixels.
	Size float64
	// Color is the text color as 8-bit RGB.
	Color [3]uint8
	// BasePoint is the pen origin: x of the first glyph, y of the baseline.
	BasePoint [2]uint32
	// CharGap is the horizontal spacing in pixels added after each glyph.
	CharGap uint32
	// Font selects the typeface. When nil the embedded default font is used.
	Font *Font
}

// Font is a parsed typeface usable at any size.
type Font struct {
	sfnt *opentype.Font
}

var loadDefaultFont = sync.OnceValues(func() (*Font, error) {
	return ParseFont(goregular.TTF)
})

// DefaultFont returns the embedded default typeface (Go Regular).
//
// Returns:
//   - *Font: the parsed default font
//   - error: error if the embedded data fails to parse
func DefaultFont() (*Font, error) {
	return loadDefaultFont()
}

// ParseFont parses raw TTF/OTF font data.
//
// Parameters:
//   - data: the font file contents
//
// Returns:
//   - *Font: the parsed font
//   - error: ErrFontLoad if the data cannot be parsed
func ParseFont(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return &Font{sfnt: f}, nil
}

// LoadFontFile reads and parses a font file from disk.
//
// Parameters:
//   - path: the font file path
//
// Returns:
//   - *Font: the parsed font
//   - error: ErrFontNotFound if the file cannot be read, ErrFontLoad on parse failure
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontNotFound, path, err)
	}
	return ParseFont(data)
}
