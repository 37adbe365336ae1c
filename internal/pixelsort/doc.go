// Package pixelsort implements the pixel sorting engine.
//
// Given an RGB raster, an optional per-pixel selection mask and a parameter
// set, the engine partitions every scanline (or column) into spans, sorts the
// pixels within each span by a colour-derived key, and writes the reordered
// pixels back, blended against the originals by selection strength.
//
// # Pipeline
//
// A run proceeds in one direction:
//
//  1. Parameters are clamped (see Parameters.Clamp).
//  2. The full frame is materialized into a Buffer, and the selection (if any)
//     into a Selection.
//  3. For angled horizontal sorting the Buffer is rotated into its bounding box.
//  4. Each row or column is handed to the Sorter, which asks the Detector for
//     spans and then sorts, reverses, jitters and writes back each span.
//  5. Rotated runs are unrotated and blended against the original by selection.
//
// # Determinism
//
// A single RNG is seeded with DefaultSeed at the start of every run and passed
// explicitly to the code that needs it. Draws happen in a fixed order: line
// order, then span detection, then for each span the falloff draw followed by
// the per-position jitter draws. Two runs with equal inputs produce
// byte-identical output.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner. Spans
// are half-open [Start, End) intervals over line-local indices.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A Sorter, Detector or
// RNG belongs to exactly one run; Run and RunBlocks allocate their own.
package pixelsort
