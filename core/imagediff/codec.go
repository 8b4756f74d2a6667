package imagediff

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// ErrDecode is matched by every image decoding failure.
var ErrDecode = errors.New("image decode failed")

// DecodeError wraps the codec error for an undecodable resource.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode png: %v", e.Err)
	}
	return fmt.Sprintf("decode png %s: %v", e.Source, e.Err)
}

// Unwrap returns the codec error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is allows errors.Is(err, ErrDecode).
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Bitmap is a decoded image as a tight RGBA buffer.
type Bitmap struct {
	Width  int
	Height int
	// Pix holds Width*Height*4 bytes of non-premultiplied RGBA.
	Pix []uint8
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Decode parses PNG bytes into a Bitmap. source names the resource in errors.
func Decode(data []byte, source string) (*Bitmap, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	b := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && nrgba.Stride == 4*b.Dx() {
		return &Bitmap{Width: b.Dx(), Height: b.Dy(), Pix: nrgba.Pix}, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Bitmap{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}, nil
}

// Encode renders a Bitmap as PNG bytes.
func Encode(bm *Bitmap) ([]byte, error) {
	img := &image.NRGBA{
		Pix:    bm.Pix,
		Stride: 4 * bm.Width,
		Rect:   image.Rect(0, 0, bm.Width, bm.Height),
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
