// Package imagediff decodes PNG images into raw RGBA buffers and compares
// them pixel by pixel.
//
// Compare measures the perceptual difference of each pixel pair in YIQ
// space. Pixels whose delta exceeds the threshold count as mismatches
// unless they look like anti-aliasing, in which case they are drawn in the
// anti-alias colour and not counted. The output buffer receives a diff
// image: mismatches in red, anti-aliased pixels in yellow, unchanged pixels
// as a faded grayscale copy of the first image.
//
// Buffers are non-premultiplied RGBA, four bytes per pixel, row-major with no
// padding, as produced by Decode.
package imagediff
