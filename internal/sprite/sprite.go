// Package sprite loads small images and resamples them to terminal cell grids.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Sprite is either a decoded image or a solid placeholder colour.
type Sprite struct {
	img      image.Image
	fallback color.RGBA

	cacheW, cacheH int
	cache          [][]color.RGBA
}

// Placeholder returns a sprite that renders as a single solid colour.
func Placeholder(c color.RGBA) *Sprite {
	return &Sprite{fallback: c}
}

// Load decodes the image at path. On any failure it still returns a usable
// placeholder sprite in fallback colour, together with the error.
func Load(path string, fallback color.RGBA) (*Sprite, error) {
	s := Placeholder(fallback)
	if path == "" {
		return s, fmt.Errorf("no sprite path configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("failed to open sprite %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return s, fmt.Errorf("failed to decode sprite %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return s, fmt.Errorf("sprite %s is empty", path)
	}
	s.img = img
	return s, nil
}

// IsPlaceholder reports whether the sprite has no image behind it.
func (s *Sprite) IsPlaceholder() bool {
	return s == nil || s.img == nil
}

// Cells resamples the sprite to a w x h grid, [row][col]. The last result is
// cached since the size only changes when the terminal is resized.
func (s *Sprite) Cells(w, h int) [][]color.RGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	if s.cache != nil && s.cacheW == w && s.cacheH == h {
		return s.cache
	}

	grid := make([][]color.RGBA, h)
	if s.img == nil {
		for y := range grid {
			grid[y] = make([]color.RGBA, w)
			for x := range grid[y] {
				grid[y][x] = s.fallback
			}
		}
	} else {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
		for y := range grid {
			grid[y] = make([]color.RGBA, w)
			for x := range grid[y] {
				grid[y][x] = dst.RGBAAt(x, y)
			}
		}
	}

	s.cacheW, s.cacheH, s.cache = w, h, grid
	return grid
}

// ParseHex parses a #rrggbb colour.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
