package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// MaxSide bounds both dimensions of an accepted image.
const MaxSide = 4096

var (
	ErrUnsupportedFormat = errors.New("only png and jpg images are supported")
	ErrTooLarge          = fmt.Errorf("image dimensions must not exceed %dx%d", MaxSide, MaxSide)
)

// Decode reads a jpeg or png image. The header is checked before any pixel
// data is allocated.
func Decode(r io.Reader) (image.Image, error) {
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, decodeErr(err)
	}
	if format != "jpeg" && format != "png" {
		return nil, ErrUnsupportedFormat
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxSide || cfg.Height > MaxSide {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, decodeErr(err)
	}
	return img, nil
}

func decodeErr(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return ErrUnsupportedFormat
	}
	return fmt.Errorf("decode image: %w", err)
}

// CropSquare cuts the largest centered square out of img.
func CropSquare(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, image.Pt(x0, y0), draw.Src)
	return dst
}

func Resize(img image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func EncodeJPEG(img image.Image) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &buf, nil
}

// ProfilePicture turns an uploaded jpg or png into a size x size jpeg.
func ProfilePicture(r io.Reader, size int) (*bytes.Buffer, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(Resize(CropSquare(img), size))
}
