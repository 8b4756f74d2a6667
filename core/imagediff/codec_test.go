package imagediff

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRGBA(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	bm, err := Decode(encodeRGBA(t, src), "a.png")
	require.NoError(t, err)
	assert.Equal(t, 2, bm.Width)
	assert.Equal(t, 1, bm.Height)
	assert.Equal(t, []uint8{10, 20, 30, 255, 200, 100, 50, 128}, bm.Pix)

	data, err := Encode(bm)
	require.NoError(t, err)
	again, err := Decode(data, "")
	require.NoError(t, err)
	assert.Equal(t, bm.Pix, again.Pix)
}

func TestDecodeConvertsPalettedImages(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{
		color.NRGBA{A: 255},
		color.NRGBA{R: 255, A: 255},
	})
	pal.SetColorIndex(1, 1, 1)

	bm, err := Decode(encodeRGBA(t, pal), "p.png")
	require.NoError(t, err)
	assert.Len(t, bm.Pix, 16)
	assert.Equal(t, []uint8{255, 0, 0, 255}, bm.Pix[12:16])
}

func TestDecodeError(t *testing.T) {
	_, err := Decode([]byte("__data_a__"), "s3://bucket/a.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "s3://bucket/a.png")
}

func TestNewBitmap(t *testing.T) {
	bm := NewBitmap(3, 2)
	assert.Len(t, bm.Pix, 24)
}
