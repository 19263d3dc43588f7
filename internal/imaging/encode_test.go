package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestEncodeResult(t *testing.T) {
	img := RoundAvatar(solidNRGBA(10, 10, opaqueRed), 24)

	result, err := EncodeResult(img)
	if err != nil {
		t.Fatalf("EncodeResult failed: %v", err)
	}
	if result.Width != 24 || result.Height != 24 {
		t.Errorf("dimensions: got %dx%d, want 24x24", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Transparency survives the round trip.
	if _, _, _, a := decoded.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha: got %d, want 0", a)
	}
}

func TestEncodeResult_Empty(t *testing.T) {
	_, err := EncodeResult(&image.NRGBA{})
	if !IsKind(err, ErrKindDimension) {
		t.Errorf("got %v, want dimension error", err)
	}
}

func TestSave(t *testing.T) {
	img := solidNRGBA(12, 8, color.NRGBA{10, 200, 30, 255})
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.JPEG", "out.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, img); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			back, err := Open(path)
			if err != nil {
				t.Fatalf("Open after Save failed: %v", err)
			}
			if back.Bounds().Dx() != 12 || back.Bounds().Dy() != 8 {
				t.Errorf("dimensions: got %v, want 12x8", back.Bounds())
			}
		})
	}
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()
	img := solidNRGBA(4, 4, opaqueWhite)

	tests := []struct {
		name string
		path string
		img  image.Image
		want ErrorKind
	}{
		{"unknown extension", filepath.Join(dir, "out.xyz"), img, ErrKindUnsupportedFormat},
		{"no extension", filepath.Join(dir, "out"), img, ErrKindUnsupportedFormat},
		{"empty image", filepath.Join(dir, "empty.png"), &image.NRGBA{}, ErrKindDimension},
		{"missing directory", filepath.Join(dir, "missing", "out.png"), img, ErrKindEncode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Save(tt.path, tt.img)
			if err == nil {
				t.Fatal("Save should fail")
			}
			if !IsKind(err, tt.want) {
				t.Errorf("got %v, want kind %v", err, tt.want)
			}
		})
	}
}
