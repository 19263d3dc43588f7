package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is an 8-bit, non-premultiplied RGBA color.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes the color of a single pixel.
//
// RGBA holds the stored, non-premultiplied channels. Hex and HSL describe the
// color channels only and ignore alpha, so a fully transparent pixel keeps
// whatever color it was stored with.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB"
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor returns the color of the pixel at (x, y).
//
// Coordinates are 0-based from the top-left corner of img's bounds. An error
// is returned when (x, y) is outside the image.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
	if !p.In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	c := nrgbaAt(img, p.X, p.Y)
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGBA: c,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

// nrgbaAt reads a pixel as non-premultiplied 8-bit RGBA.
func nrgbaAt(img image.Image, x, y int) RGBAColor {
	if n, ok := img.(*image.NRGBA); ok {
		c := n.NRGBAAt(x, y)
		return RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A}
	}

	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return RGBAColor{}
	}
	// Un-premultiply from 16-bit, then reduce to 8-bit.
	r = r * 0xffff / a
	g = g * 0xffff / a
	b = b * 0xffff / a
	return RGBAColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// LabeledPoint is a pixel coordinate with an optional label.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult is a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several pixels. If any point is outside the
// image, an error is returned and no samples are.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}
