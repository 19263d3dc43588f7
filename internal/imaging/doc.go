// Package imaging composites circular avatars onto background images.
//
// The pipeline has three stages that run in sequence:
//
//   - CircleMask builds a binary circular alpha mask for a square size.
//   - RoundAvatar resizes an avatar to that square with a Lanczos filter and
//     cuts away everything outside the circle.
//   - Composite places the round avatar on a background, scaling it down
//     when it would overflow the background edges.
//
// CombineImages runs the whole pipeline from two file paths.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Images produced by this
// package always have a zero origin.
//
// # Placement
//
// The requested point (x, y) is not the avatar's top-left corner. The avatar
// is anchored DefaultAnchorBias pixels up and left of it, clamped at zero, so
// (5,3) anchors at (0,0) and (50,60) anchors at (40,50).
//
// When the avatar would extend past the right or bottom edge it is scaled by
// the smaller of the two available-space ratios. If the anchor is already on
// or past the edge there is no space left, the scale is zero and only the
// pre-pass (see Composite) touches the background.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless,
// never mutate their inputs and can be called concurrently.
//
// # Error Handling
//
// Loading and encoding failures are reported as *ImageError, classified by
// ErrorKind. Degenerate geometry, such as a zero avatar size or an anchor
// outside the background, is not an error: it leaves the background as is.
package imaging
