package imaging

import (
	"image"
)

// CircleMask builds a binary circular alpha mask of size x size pixels.
//
// A pixel is opaque white (255,255,255,255) when the center of the pixel lies
// within the circle inscribed in the square, and fully transparent black
// (0,0,0,0) otherwise. The mask has a hard edge; there is no anti-aliasing.
//
// # Geometry
//
// The radius and center are both size/2 in floating point. Each pixel is
// sampled at its center rather than its top-left corner:
//
//	dx = x - size/2 + 0.5
//	dy = y - size/2 + 0.5
//	inside = dx*dx + dy*dy <= radius*radius
//
// Sampling at the center keeps the mask symmetric under a 180° rotation.
//
// A size of zero or less returns an empty image.
func CircleMask(size int) *image.NRGBA {
	if size <= 0 {
		return &image.NRGBA{}
	}

	mask := image.NewNRGBA(image.Rect(0, 0, size, size))
	radius := float64(size) / 2
	center := float64(size) / 2
	r2 := radius * radius

	for y := 0; y < size; y++ {
		dy := float64(y) - center + 0.5
		for x := 0; x < size; x++ {
			dx := float64(x) - center + 0.5
			if dx*dx+dy*dy > r2 {
				// NewNRGBA is zeroed, so outside pixels are already transparent.
				continue
			}
			i := mask.PixOffset(x, y)
			mask.Pix[i+0] = 255
			mask.Pix[i+1] = 255
			mask.Pix[i+2] = 255
			mask.Pix[i+3] = 255
		}
	}

	return mask
}
