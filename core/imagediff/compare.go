package imagediff

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when buffers do not match the given dimensions.
var ErrSizeMismatch = errors.New("image sizes do not match")

// DefaultThreshold is the matching threshold used when none is configured.
const DefaultThreshold = 0.1

// maxYIQDelta is the largest possible squared YIQ distance between two colours.
const maxYIQDelta = 35215

// Color is an RGB triple used to paint the diff output.
type Color [3]uint8

// Options tune Compare.
type Options struct {
	// Threshold in [0,1]; smaller is more sensitive.
	Threshold float64
	// IncludeAA counts anti-aliased pixels as mismatches.
	IncludeAA bool
	// Alpha is the opacity of unchanged pixels in the output.
	Alpha float64
	// AAColor paints anti-aliased pixels.
	AAColor Color
	// DiffColor paints mismatching pixels.
	DiffColor Color
	// DiffMask draws only the differences on a transparent background.
	DiffMask bool
}

// DefaultOptions returns the comparison defaults for threshold.
func DefaultOptions(threshold float64) Options {
	return Options{
		Threshold: threshold,
		Alpha:     0.1,
		AAColor:   Color{255, 255, 0},
		DiffColor: Color{255, 0, 0},
	}
}

// Compare counts mismatching pixels between img1 and img2 and paints the
// diff into output, which may be nil. All non-nil buffers must hold exactly
// width*height*4 bytes.
func Compare(img1, img2, output []uint8, width, height int, opts Options) (int, error) {
	size := width * height * 4
	if len(img1) != size || len(img2) != size || (output != nil && len(output) != size) {
		return 0, fmt.Errorf("%w: expected %dx%d (%d bytes), got %d and %d bytes",
			ErrSizeMismatch, width, height, size, len(img1), len(img2))
	}

	drawOutput := output != nil && !opts.DiffMask

	if bytes.Equal(img1, img2) {
		if drawOutput {
			for i := 0; i < size; i += 4 {
				drawGrayPixel(img1, i, opts.Alpha, output)
			}
		}
		return 0, nil
	}

	maxDelta := maxYIQDelta * opts.Threshold * opts.Threshold
	diff := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := (y*width + x) * 4
			delta := colorDelta(img1, img2, pos, pos, false)

			switch {
			case abs(delta) > maxDelta:
				if !opts.IncludeAA && (antialiased(img1, x, y, width, height, img2) || antialiased(img2, x, y, width, height, img1)) {
					if drawOutput {
						drawPixel(output, pos, opts.AAColor)
					}
					continue
				}
				if output != nil {
					drawPixel(output, pos, opts.DiffColor)
				}
				diff++
			case drawOutput:
				drawGrayPixel(img1, pos, opts.Alpha, output)
			}
		}
	}

	return diff, nil
}

// antialiased checks whether the pixel at (x1,y1) sits on an anti-aliased
// edge of img, using img2 to confirm the edge exists in both images.
func antialiased(img []uint8, x1, y1, width, height int, img2 []uint8) bool {
	x0, y0 := max(x1-1, 0), max(y1-1, 0)
	x2, y2 := min(x1+1, width-1), min(y1+1, height-1)
	pos := (y1*width + x1) * 4

	zeroes := 0
	if x1 == x0 || x1 == x2 || y1 == y0 || y1 == y2 {
		zeroes = 1
	}

	var lo, hi float64
	var minX, minY, maxX, maxY int

	for x := x0; x <= x2; x++ {
		for y := y0; y <= y2; y++ {
			if x == x1 && y == y1 {
				continue
			}
			delta := colorDelta(img, img, pos, (y*width+x)*4, true)
			switch {
			case delta == 0:
				zeroes++
				if zeroes > 2 {
					return false
				}
			case delta < lo:
				lo, minX, minY = delta, x, y
			case delta > hi:
				hi, maxX, maxY = delta, x, y
			}
		}
	}

	// no darker or no brighter neighbour: not an edge
	if lo == 0 || hi == 0 {
		return false
	}

	return (hasManySiblings(img, minX, minY, width, height) && hasManySiblings(img2, minX, minY, width, height)) ||
		(hasManySiblings(img, maxX, maxY, width, height) && hasManySiblings(img2, maxX, maxY, width, height))
}

// hasManySiblings reports whether at least three neighbours share the exact
// colour of the pixel at (x1,y1).
func hasManySiblings(img []uint8, x1, y1, width, height int) bool {
	x0, y0 := max(x1-1, 0), max(y1-1, 0)
	x2, y2 := min(x1+1, width-1), min(y1+1, height-1)
	pos := (y1*width + x1) * 4

	zeroes := 0
	if x1 == x0 || x1 == x2 || y1 == y0 || y1 == y2 {
		zeroes = 1
	}

	for x := x0; x <= x2; x++ {
		for y := y0; y <= y2; y++ {
			if x == x1 && y == y1 {
				continue
			}
			pos2 := (y*width + x) * 4
			if bytes.Equal(img[pos:pos+4], img[pos2:pos2+4]) {
				zeroes++
			}
			if zeroes > 2 {
				return true
			}
		}
	}
	return false
}

// colorDelta returns the squared YIQ distance between two pixels, negative
// when the first pixel is brighter. yOnly limits it to the luma difference.
func colorDelta(img1, img2 []uint8, k, m int, yOnly bool) float64 {
	r1, g1, b1, a1 := float64(img1[k]), float64(img1[k+1]), float64(img1[k+2]), float64(img1[k+3])
	r2, g2, b2, a2 := float64(img2[m]), float64(img2[m+1]), float64(img2[m+2]), float64(img2[m+3])

	if a1 == a2 && r1 == r2 && g1 == g2 && b1 == b2 {
		return 0
	}

	if a1 < 255 {
		a1 /= 255
		r1, g1, b1 = blend(r1, a1), blend(g1, a1), blend(b1, a1)
	}
	if a2 < 255 {
		a2 /= 255
		r2, g2, b2 = blend(r2, a2), blend(g2, a2), blend(b2, a2)
	}

	y1, y2 := rgb2y(r1, g1, b1), rgb2y(r2, g2, b2)
	y := y1 - y2
	if yOnly {
		return y
	}

	i := rgb2i(r1, g1, b1) - rgb2i(r2, g2, b2)
	q := rgb2q(r1, g1, b1) - rgb2q(r2, g2, b2)
	delta := 0.5053*y*y + 0.299*i*i + 0.1957*q*q

	if y1 > y2 {
		return -delta
	}
	return delta
}

func rgb2y(r, g, b float64) float64 { return r*0.29889531 + g*0.58662247 + b*0.11448223 }
func rgb2i(r, g, b float64) float64 { return r*0.59597799 - g*0.27417610 - b*0.32180189 }
func rgb2q(r, g, b float64) float64 { return r*0.21147017 - g*0.52261711 + b*0.31114694 }

// blend composites c with opacity a over white.
func blend(c, a float64) float64 { return 255 + (c-255)*a }

func drawPixel(output []uint8, pos int, c Color) {
	output[pos] = c[0]
	output[pos+1] = c[1]
	output[pos+2] = c[2]
	output[pos+3] = 255
}

func drawGrayPixel(img []uint8, pos int, alpha float64, output []uint8) {
	r, g, b := float64(img[pos]), float64(img[pos+1]), float64(img[pos+2])
	v := uint8(blend(rgb2y(r, g, b), alpha*float64(img[pos+3])/255))
	drawPixel(output, pos, Color{v, v, v})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
