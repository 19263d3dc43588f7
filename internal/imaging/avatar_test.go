package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestRoundAvatar_Dimensions(t *testing.T) {
	avatar := createPatternImage(80, 40)

	for _, size := range []int{1, 7, 32, 100} {
		out := RoundAvatar(avatar, size)
		if out.Bounds() != image.Rect(0, 0, size, size) {
			t.Errorf("size %d: got bounds %v", size, out.Bounds())
		}
	}
}

func TestRoundAvatar_ZeroSize(t *testing.T) {
	avatar := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	if out := RoundAvatar(avatar, 0); !out.Bounds().Empty() {
		t.Errorf("expected empty image, got %v", out.Bounds())
	}
}

func TestRoundAvatar_CornersTransparent(t *testing.T) {
	avatar := createInMemoryImage(64, 64, color.RGBA{200, 100, 50, 255})

	// Size 3 keeps its corners: dx=dy=-1 gives 2 <= 2.25. From 4 up they are cut.
	for _, size := range []int{4, 5, 8, 31, 50, 120} {
		out := RoundAvatar(avatar, size)
		corners := []image.Point{
			{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1},
		}
		for _, p := range corners {
			if c := out.NRGBAAt(p.X, p.Y); c != (color.NRGBA{}) {
				t.Errorf("size %d: corner %v = %v, want fully transparent", size, p, c)
			}
		}
	}
}

func TestRoundAvatar_InsideCopiedFromResized(t *testing.T) {
	avatar := createInMemoryImage(64, 64, color.RGBA{200, 100, 50, 255})
	out := RoundAvatar(avatar, 20)

	c := out.NRGBAAt(10, 10)
	if absDiff8(c.R, 200) > 1 || absDiff8(c.G, 100) > 1 || absDiff8(c.B, 50) > 1 || c.A != 255 {
		t.Errorf("center pixel: got %v, want ~(200,100,50,255)", c)
	}
}

func TestRoundAvatar_MatchesMask(t *testing.T) {
	avatar := createInMemoryImage(30, 30, color.RGBA{10, 20, 30, 255})
	size := 25
	out := RoundAvatar(avatar, size)
	mask := CircleMask(size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			inside := mask.NRGBAAt(x, y).A > 0
			opaque := out.NRGBAAt(x, y).A > 0
			if inside != opaque {
				t.Fatalf("(%d,%d): mask inside=%v, avatar opaque=%v", x, y, inside, opaque)
			}
		}
	}
}

func TestRoundAvatar_KeepsSourceAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+0] = 0
		src.Pix[i+1] = 0
		src.Pix[i+2] = 255
		src.Pix[i+3] = 100
	}

	out := RoundAvatar(src, 16)
	c := out.NRGBAAt(8, 8)
	if absDiff8(c.A, 100) > 1 {
		t.Errorf("center alpha: got %d, want ~100", c.A)
	}
	if c.B < 250 {
		t.Errorf("center blue: got %d, want ~255", c.B)
	}
}

func TestRoundAvatar_DoesNotPreserveAspect(t *testing.T) {
	// Left half red, right half green on a wide image: after squashing to
	// a square both halves are still side by side.
	avatar := image.NewRGBA(image.Rect(0, 0, 200, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 200; x++ {
			if x < 100 {
				avatar.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				avatar.Set(x, y, color.RGBA{0, 255, 0, 255})
			}
		}
	}

	out := RoundAvatar(avatar, 40)
	left := out.NRGBAAt(8, 20)
	right := out.NRGBAAt(31, 20)
	if left.R < 250 || left.G > 5 {
		t.Errorf("left pixel: got %v, want red", left)
	}
	if right.G < 250 || right.R > 5 {
		t.Errorf("right pixel: got %v, want green", right)
	}
}

func absDiff8(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
