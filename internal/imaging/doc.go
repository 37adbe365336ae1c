// Package imaging provides the image I/O around the pixel sort engine.
//
// This package loads source images and selection masks, builds masks from
// rectangular regions, samples sort keys to help choose thresholds, and
// encodes or saves sort results. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Selection Masks
//
// A mask is an *image.Gray with the bounds of the source image. Its value at a
// pixel is the selection strength: 0 leaves the pixel untouched, 255 lets it
// take part in sorting fully, and anything between blends the sorted colour
// over the original. LoadMask reads masks from files; RegionMask builds them
// from a rectangle with an optional feathered edge.
//
// # Thresholds
//
// The threshold interval mode compares sort keys on a 0-255 scale whatever
// the key's natural range. SampleSortKeys and SortKeyStats report values on
// that scale so they can be used directly as lower_threshold and
// upper_threshold.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify their input images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Masks whose size differs from the source image
//   - File I/O errors during image loading or saving
package imaging
