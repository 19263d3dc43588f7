package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// DefaultAnchorBias is how far up and left of the requested point the
	// avatar is placed. The adjusted anchor is clamped at zero.
	DefaultAnchorBias = 10

	// DefaultAlphaThreshold is the background alpha below which the
	// pre-pass overwrites a background pixel with the avatar pixel.
	DefaultAlphaThreshold = 128
)

// Options holds the tunable constants of the compositing recipe.
type Options struct {
	// AnchorBias shifts the avatar this many pixels up and left of the
	// requested anchor. Must not be negative.
	AnchorBias int

	// AlphaThreshold is compared against background alpha in the pre-pass.
	// Background pixels with alpha strictly below it are overwritten.
	AlphaThreshold uint8
}

// DefaultOptions returns the options used by CombineImages.
func DefaultOptions() Options {
	return Options{
		AnchorBias:     DefaultAnchorBias,
		AlphaThreshold: DefaultAlphaThreshold,
	}
}

// Validate reports whether the options can be used for compositing.
func (o Options) Validate() error {
	if o.AnchorBias < 0 {
		return &ImageError{
			Op:   "configure",
			Kind: ErrKindDimension,
			Err:  fmt.Errorf("anchor bias must not be negative, got %d", o.AnchorBias),
		}
	}
	return nil
}

// Anchor returns the adjusted top-left corner for a requested point (x, y):
// each coordinate is reduced by the anchor bias, or set to 0 when it is
// smaller than the bias.
func Anchor(x, y int, opts Options) image.Point {
	ax, ay := 0, 0
	if x >= opts.AnchorBias {
		ax = x - opts.AnchorBias
	}
	if y >= opts.AnchorBias {
		ay = y - opts.AnchorBias
	}
	return image.Point{X: ax, Y: ay}
}

// Placement describes where and at what size an avatar lands on a
// background.
type Placement struct {
	// Anchor is the adjusted top-left corner of the avatar.
	Anchor image.Point `json:"anchor"`

	// Size is the size of the avatar as overlaid. It equals the input size
	// unless the avatar overflowed the background.
	Size image.Point `json:"size"`

	// Scale is the factor applied to the avatar, 1 when it fits.
	Scale float64 `json:"scale"`

	// Overflow is true when the avatar extended past the background.
	Overflow bool `json:"overflow"`

	// Skipped is true when the overflow left no room at all and the
	// overlay step was not performed.
	Skipped bool `json:"skipped"`
}

// Plan computes the placement of an avatar of the given size onto a
// background of the given size for the requested point (x, y).
//
// When the avatar does not fit in the space right of and below the anchor,
// it is scaled by min(availableW/avatarW, availableH/avatarH) and the
// resulting dimensions are truncated to integers. A scale of zero or less,
// which happens when the anchor is on or past the background edge, or a
// scaled size with a zero side, marks the placement as skipped.
func Plan(background, avatar image.Point, x, y int, opts Options) Placement {
	anchor := Anchor(x, y, opts)
	p := Placement{Anchor: anchor, Size: avatar, Scale: 1}

	availW := background.X - anchor.X
	availH := background.Y - anchor.Y
	if avatar.X <= availW && avatar.Y <= availH {
		return p
	}

	p.Overflow = true
	p.Scale = math.Min(float64(availW)/float64(avatar.X), float64(availH)/float64(avatar.Y))
	if p.Scale <= 0 || math.IsNaN(p.Scale) {
		p.Scale = 0
		p.Size = image.Point{}
		p.Skipped = true
		return p
	}

	p.Size = image.Point{
		X: int(float64(avatar.X) * p.Scale),
		Y: int(float64(avatar.Y) * p.Scale),
	}
	if p.Size.X <= 0 || p.Size.Y <= 0 {
		p.Size = image.Point{}
		p.Skipped = true
	}
	return p
}

// Composite places avatar onto background at the requested point (x, y)
// and returns the result as a new image the size of background.
// background is not modified.
//
// The recipe runs in two passes, in this order:
//
//  1. Pre-pass: every avatar pixel that lands inside the background
//     replaces the background pixel verbatim when the background alpha is
//     below opts.AlphaThreshold. Transparent avatar pixels are copied too.
//  2. Overlay: the avatar, scaled down first if it overflows (see Plan), is
//     drawn with source-over blending at the adjusted anchor.
//
// Where the avatar has non-zero alpha, the overlay generally supersedes the
// pre-pass.
func Composite(background, avatar image.Image, x, y int, opts Options) (*image.NRGBA, Placement) {
	dst := imaging.Clone(background)
	src := toNRGBA(avatar)

	bw, bh := dst.Rect.Dx(), dst.Rect.Dy()
	aw, ah := src.Rect.Dx(), src.Rect.Dy()
	plan := Plan(image.Pt(bw, bh), image.Pt(aw, ah), x, y, opts)

	prePass(dst, src, plan.Anchor, opts.AlphaThreshold)

	if plan.Skipped {
		return dst, plan
	}
	if plan.Overflow {
		src = imaging.Resize(src, plan.Size.X, plan.Size.Y, imaging.Lanczos)
	}
	return imaging.Overlay(dst, src, plan.Anchor, 1.0), plan
}

// prePass copies src pixels into dst at anchor wherever dst alpha is below
// threshold. Both images must have a zero origin.
func prePass(dst, src *image.NRGBA, anchor image.Point, threshold uint8) {
	bw, bh := dst.Rect.Dx(), dst.Rect.Dy()
	aw, ah := src.Rect.Dx(), src.Rect.Dy()

	for sy := 0; sy < ah; sy++ {
		by := anchor.Y + sy
		if by >= bh {
			break
		}
		for sx := 0; sx < aw; sx++ {
			bx := anchor.X + sx
			if bx >= bw {
				break
			}
			di := dst.PixOffset(bx, by)
			if dst.Pix[di+3] >= threshold {
				continue
			}
			si := src.PixOffset(sx, sy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
}

// toNRGBA returns img as a zero-origin *image.NRGBA, copying only when
// needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Combine masks avatar to a size x size circle and composites it onto
// background at (x, y). It is the in-memory form of CombineImages.
func Combine(background, avatar image.Image, x, y, size int, opts Options) (*image.NRGBA, Placement, error) {
	if err := opts.Validate(); err != nil {
		return nil, Placement{}, err
	}
	round := RoundAvatar(avatar, size)
	out, plan := Composite(background, round, x, y, opts)
	return out, plan, nil
}

// CombineImages loads a background and an avatar from disk, cuts the avatar
// to a targetSize circle and composites it onto the background at (x, y)
// using DefaultOptions.
//
// Parameters:
//   - backgroundPath, avatarPath: image files in any registered format.
//   - x, y: requested anchor in background pixels, before the bias is applied.
//   - targetSize: side of the avatar square after resizing. Zero leaves the
//     background unchanged.
//
// Returns:
//   - *image.NRGBA: the composited image, always the size of the background.
//   - error: an *ImageError if either file cannot be opened or decoded.
//
// Nothing is cached between calls; each call owns all of its buffers.
func CombineImages(backgroundPath, avatarPath string, x, y, targetSize uint32) (*image.NRGBA, error) {
	out, _, err := CombineImagesWithOptions(backgroundPath, avatarPath, x, y, targetSize, DefaultOptions())
	return out, err
}

// CombineImagesWithOptions is CombineImages with explicit options. It also
// returns the placement that was used.
func CombineImagesWithOptions(backgroundPath, avatarPath string, x, y, targetSize uint32, opts Options) (*image.NRGBA, Placement, error) {
	background, err := Open(backgroundPath)
	if err != nil {
		return nil, Placement{}, err
	}
	avatar, err := Open(avatarPath)
	if err != nil {
		return nil, Placement{}, err
	}
	return Combine(background, avatar, int(x), int(y), int(targetSize), opts)
}
