package text

import (
	"errors"
	"testing"
)

func TestDefaultFont(t *testing.T) {
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f == nil {
		t.Fatal("nil font")
	}
}

func TestParseFontRejectsGarbage(t *testing.T) {
	if _, err := ParseFont([]byte("not a font")); !errors.Is(err, ErrFontLoad) {
		t.Fatalf("got %v, want ErrFontLoad", err)
	}
}

func TestLayoutStringPlacesGlyphs(t *testing.T) {
	glyphs, err := LayoutString(StringInput{
		Text:      "Hi",
		Size:      24,
		Color:     [3]uint8{255, 0, 0},
		BasePoint: [2]uint32{10, 40},
		CharGap:   2,
	}, 256, 256, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	if glyphs[0].X != 10 {
		t.Fatalf("first glyph x: got %d, want 10", glyphs[0].X)
	}
	// second glyph advances by first glyph width plus the gap
	wantX := 10 + glyphs[0].Width + 2
	if glyphs[1].X != wantX {
		t.Fatalf("second glyph x: got %d, want %d", glyphs[1].X, wantX)
	}
	for i, g := range glyphs {
		if g.Width == 0 || g.Height == 0 {
			t.Fatalf("glyph %d has empty raster", i)
		}
		if int(g.Width*g.Height*4) != len(g.Pixels) {
			t.Fatalf("glyph %d: %dx%d does not match %d pixel bytes", i, g.Width, g.Height, len(g.Pixels))
		}
		if g.Y >= 40 {
			t.Fatalf("glyph %d top %d is not above the baseline", i, g.Y)
		}
	}
}

func TestLayoutStringWhitespaceAdvance(t *testing.T) {
	gap := uint32(4)
	spaced, err := LayoutString(StringInput{
		Text: "a b", Size: 24, BasePoint: [2]uint32{0, 40}, CharGap: gap,
	}, 256, 256, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spaced) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(spaced))
	}
	// space advances the pen by three gaps on top of the glyph advance
	wantX := spaced[0].Width + gap + gap*3
	if spaced[1].X != wantX {
		t.Fatalf("got x %d, want %d", spaced[1].X, wantX)
	}
}

func TestLayoutStringColorAndAlpha(t *testing.T) {
	glyphs, err := LayoutString(StringInput{
		Text: "#", Size: 24, Color: [3]uint8{10, 20, 200}, BasePoint: [2]uint32{0, 40}, CharGap: 1,
	}, 128, 128, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sawOpaque := false
	for i := 0; i < len(glyphs[0].Pixels); i += 4 {
		px := glyphs[0].Pixels[i : i+4]
		if px[3] == 0 {
			if px[0] != 0 || px[1] != 0 || px[2] != 0 {
				t.Fatal("transparent pixel carries color")
			}
			continue
		}
		if px[3] < alphaCutoff {
			t.Fatalf("pixel alpha %d below cutoff survived", px[3])
		}
		if px[0] != 10 || px[1] != 20 || px[2] != 200 {
			t.Fatalf("pixel color got [%d %d %d], want [10 20 200]", px[0], px[1], px[2])
		}
		sawOpaque = true
	}
	if !sawOpaque {
		t.Fatal("glyph raster is fully transparent")
	}
}

func TestLayoutStringSwapRB(t *testing.T) {
	glyphs, err := LayoutString(StringInput{
		Text: "#", Size: 24, Color: [3]uint8{10, 20, 200}, BasePoint: [2]uint32{0, 40}, CharGap: 1,
	}, 128, 128, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < len(glyphs[0].Pixels); i += 4 {
		px := glyphs[0].Pixels[i : i+4]
		if px[3] == 0 {
			continue
		}
		if px[0] != 200 || px[2] != 10 {
			t.Fatalf("pixel color got [%d %d %d], want swapped [200 20 10]", px[0], px[1], px[2])
		}
		return
	}
	t.Fatal("glyph raster is fully transparent")
}

func TestLayoutStringExceedsBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     StringInput
		texW, texH uint32
	}{
		{
			name:  "ascent above baseline",
			input: StringInput{Text: "A", Size: 24, BasePoint: [2]uint32{0, 2}, CharGap: 1},
			texW:  256, texH: 256,
		},
		{
			name:  "runs off the right edge",
			input: StringInput{Text: "WWWWWWWW", Size: 24, BasePoint: [2]uint32{0, 40}, CharGap: 1},
			texW:  32, texH: 256,
		},
		{
			name:  "runs off the bottom edge",
			input: StringInput{Text: "gj", Size: 24, BasePoint: [2]uint32{0, 30}, CharGap: 1},
			texW:  256, texH: 31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs, err := LayoutString(tt.input, tt.texW, tt.texH, false)
			if !errors.Is(err, ErrExceedsBounds) {
				t.Fatalf("got %v, want ErrExceedsBounds", err)
			}
			if glyphs != nil {
				t.Fatal("placements returned alongside bounds error")
			}
		})
	}
}
