package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is the quality used when Save writes a JPEG file.
const JPEGQuality = 95

// EncodedImage is an image returned inline as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeResult encodes img as PNG and wraps it for transport.
func EncodeResult(img image.Image) (*EncodedImage, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, &ImageError{Op: "encode", Kind: ErrKindDimension, Err: errEmptyImage(b)}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ImageError{Op: "encode", Kind: ErrKindEncode, Err: err}
	}

	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// encoderFor picks an encoder from the extension of path.
func encoderFor(path string) (imgio.Encoder, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), true
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), true
	case ".bmp":
		return imgio.BMPEncoder(), true
	default:
		return nil, false
	}
}

// Save writes img to path. The format is chosen from the file extension:
// .png, .jpg/.jpeg or .bmp. JPEG drops the alpha channel.
func Save(path string, img image.Image) error {
	enc, ok := encoderFor(path)
	if !ok {
		return &ImageError{
			Op:   "save",
			Path: path,
			Kind: ErrKindUnsupportedFormat,
			Err:  errUnknownExtension(filepath.Ext(path)),
		}
	}
	if b := img.Bounds(); b.Empty() {
		return &ImageError{Op: "save", Path: path, Kind: ErrKindDimension, Err: errEmptyImage(b)}
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return &ImageError{Op: "save", Path: path, Kind: ErrKindEncode, Err: err}
	}
	return nil
}
