package imageformat

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedTarget is returned when Convert is asked for a format it cannot encode.
var ErrUnsupportedTarget = errors.New("unsupported target format")

// ConvertOptions controls Convert.
type ConvertOptions struct {
	Target   Format
	MaxWidth int
	Quality  int
}

// ConvertResult describes the written image.
type ConvertResult struct {
	SourceFormat string
	Width        int
	Height       int
}

// Convert decodes a JPEG, PNG or WebP image, scales it down to MaxWidth when
// wider, and encodes it as the target format.
func Convert(src io.Reader, dst io.Writer, opts ConvertOptions) (ConvertResult, error) {
	img, sourceFormat, err := image.Decode(src)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img, opts.MaxWidth)
	bounds := img.Bounds()
	result := ConvertResult{SourceFormat: sourceFormat, Width: bounds.Dx(), Height: bounds.Dy()}

	target := opts.Target
	if target == "" {
		target = WebP
	}

	switch target {
	case WebP:
		if err := nativewebp.Encode(dst, img, nil); err != nil {
			return result, fmt.Errorf("encode webp: %w", err)
		}
	case JPEG:
		quality := opts.Quality
		if quality <= 0 || quality > 100 {
			quality = 82
		}
		if err := jpeg.Encode(dst, img, &jpeg.Options{Quality: quality}); err != nil {
			return result, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return result, fmt.Errorf("%w: %s", ErrUnsupportedTarget, target)
	}

	return result, nil
}

func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}
	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
	return scaled
}
