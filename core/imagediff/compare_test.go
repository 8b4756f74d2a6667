package imagediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solid returns a width x height buffer filled with one opaque colour.
func solid(width, height int, c Color) []uint8 {
	buf := make([]uint8, width*height*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = c[0], c[1], c[2], 255
	}
	return buf
}

func setPixel(buf []uint8, width, x, y int, c Color) {
	pos := (y*width + x) * 4
	buf[pos], buf[pos+1], buf[pos+2], buf[pos+3] = c[0], c[1], c[2], 255
}

var white = Color{255, 255, 255}

func TestCompareIdentical(t *testing.T) {
	a := solid(4, 4, white)
	b := solid(4, 4, white)
	out := make([]uint8, len(a))

	n, err := Compare(a, b, out, 4, 4, DefaultOptions(DefaultThreshold))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	// unchanged pixels are drawn as opaque grayscale
	assert.Equal(t, []uint8{255, 255, 255, 255}, out[:4])
}

func TestCompareSinglePixel(t *testing.T) {
	a := solid(5, 5, white)
	b := solid(5, 5, white)
	setPixel(b, 5, 2, 2, Color{255, 0, 0})
	out := make([]uint8, len(a))

	n, err := Compare(a, b, out, 5, 5, DefaultOptions(DefaultThreshold))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pos := (2*5 + 2) * 4
	assert.Equal(t, []uint8{255, 0, 0, 255}, out[pos:pos+4])
}

func TestCompareBelowThreshold(t *testing.T) {
	a := solid(3, 3, white)
	b := solid(3, 3, Color{254, 254, 254})

	n, err := Compare(a, b, nil, 3, 3, DefaultOptions(DefaultThreshold))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// threshold 0 makes any colour change count
	n, err = Compare(a, b, nil, 3, 3, DefaultOptions(0))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestCompareDiffMask(t *testing.T) {
	a := solid(3, 3, white)
	b := solid(3, 3, white)
	setPixel(b, 3, 0, 0, Color{0, 0, 0})
	out := make([]uint8, len(a))

	opts := DefaultOptions(DefaultThreshold)
	opts.DiffMask = true
	n, err := Compare(a, b, out, 3, 3, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uint8{255, 0, 0, 255}, out[:4])
	// everything else untouched
	assert.Equal(t, []uint8{0, 0, 0, 0}, out[4:8])
}

func TestCompareSizeMismatch(t *testing.T) {
	a := solid(2, 2, white)
	b := solid(3, 3, white)

	_, err := Compare(a, b, nil, 2, 2, DefaultOptions(DefaultThreshold))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestColorDelta(t *testing.T) {
	black := solid(1, 1, Color{0, 0, 0})
	w := solid(1, 1, white)

	assert.Equal(t, 0.0, colorDelta(w, w, 0, 0, false))
	// the first pixel is brighter, so the delta is negative
	assert.Less(t, colorDelta(w, black, 0, 0, false), 0.0)
	assert.Greater(t, colorDelta(black, w, 0, 0, false), 0.0)
}
