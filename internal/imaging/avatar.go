package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// RoundAvatar resizes avatar to a size x size square and cuts it to the
// inscribed circle.
//
// The resize uses a 3-lobe Lanczos filter and does not preserve the aspect
// ratio. Pixels inside the circle (see CircleMask) are copied verbatim from
// the resized avatar, including their alpha. Pixels outside are set to
// (0,0,0,0).
//
// A size of zero or less returns an empty image.
func RoundAvatar(avatar image.Image, size int) *image.NRGBA {
	if size <= 0 {
		return &image.NRGBA{}
	}

	resized := imaging.Resize(avatar, size, size, imaging.Lanczos)
	mask := CircleMask(size)

	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mask.Pix[mask.PixOffset(x, y)+3] == 0 {
				continue
			}
			si := resized.PixOffset(x, y)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], resized.Pix[si:si+4])
		}
	}

	return out
}
