package imaging

import (
	"errors"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Open reads and decodes the image at path. The format is detected from the
// file contents, not its extension.
//
// # Errors
//
//   - ErrKindOpen if the file does not exist or cannot be read
//   - ErrKindUnsupportedFormat if no registered decoder recognizes the data
//   - ErrKindDecode if the data is recognized but malformed
func Open(path string) (image.Image, error) {
	img, _, err := decodeFile(path)
	return img, err
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &ImageError{Op: "open", Path: path, Kind: ErrKindOpen, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		kind := ErrKindDecode
		if errors.Is(err, image.ErrFormat) {
			kind = ErrKindUnsupportedFormat
		}
		return nil, "", &ImageError{Op: "decode", Path: path, Kind: kind, Err: err}
	}
	return img, format, nil
}

type cacheEntry struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// The cache backs the inspection tools of the server, where the same file is
// typically queried several times. Compositing never goes through the cache:
// every CombineImages call decodes its inputs afresh.
//
// Cached images remain in memory until removed via Evict or Clear.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the cached image for path, decoding it from disk on a miss.
//
// The image is cached using the exact path string provided. Different paths
// to the same file result in separate cache entries. Errors are the same as
// for Open and are not cached.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	return e.img, err
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	img, format, err := decodeFile(path)
	if err != nil {
		return cacheEntry{}, err
	}

	e := cacheEntry{img: img, format: format}
	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder, e.g. "png",
	// "jpeg", "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	// Backgrounds without alpha are always fully opaque, so the compositing
	// pre-pass never touches them.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, &ImageError{Op: "stat", Path: path, Kind: ErrKindOpen, Err: err}
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch e.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path, loading it
// through cache.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
