package imaging

import (
	"errors"
	"fmt"
	"image"
)

// ErrorKind classifies an ImageError.
type ErrorKind int

const (
	// ErrKindOpen means the file could not be opened or read.
	ErrKindOpen ErrorKind = iota

	// ErrKindDecode means the file was read but its contents are malformed.
	ErrKindDecode

	// ErrKindUnsupportedFormat means no registered codec recognized the data,
	// or an output path has an extension with no encoder.
	ErrKindUnsupportedFormat

	// ErrKindDimension means an image had dimensions an operation cannot
	// work with, such as encoding a zero-sized image.
	ErrKindDimension

	// ErrKindEncode means writing an image failed.
	ErrKindEncode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindOpen:
		return "open"
	case ErrKindDecode:
		return "decode"
	case ErrKindUnsupportedFormat:
		return "unsupported format"
	case ErrKindDimension:
		return "dimension"
	case ErrKindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// ImageError is the single error type returned by the loading, compositing
// and encoding operations in this package.
//
// Errors are surfaced immediately to the caller: there are no retries and no
// partial results. Use errors.As or IsKind to inspect the failure class.
type ImageError struct {
	// Op is the operation that failed, e.g. "open", "decode", "save".
	Op string

	// Path is the file involved, if any.
	Path string

	// Kind classifies the failure.
	Kind ErrorKind

	// Err is the underlying error, if any.
	Err error
}

func (e *ImageError) Error() string {
	msg := "failed to " + e.Op + " image"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *ImageError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ie *ImageError
	if errors.As(err, &ie) {
		return ie.Kind == kind
	}
	return false
}

func errEmptyImage(b image.Rectangle) error {
	return fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
}

func errUnknownExtension(ext string) error {
	if ext == "" {
		return errors.New("output path has no extension")
	}
	return fmt.Errorf("no encoder for extension %q", ext)
}
