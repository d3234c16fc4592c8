package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	MaxWidth  = 1920
	MaxHeight = 1080

	// MaxPixels bounds the decoded size of a source image.
	MaxPixels = 50_000_000

	JPEGMimeType  = "image/jpeg"
	jpegURLPrefix = "data:image/jpeg;base64,"

	mib = 1024 * 1024
)

// Compressed is the upload-ready version of a source image.
type Compressed struct {
	DataURL       string
	Width         int
	Height        int
	Quality       float64
	EstimatedSize int64
}

// QualityFor picks the JPEG quality from the size of the original file.
// Larger sources get stronger compression.
func QualityFor(size int64) float64 {
	switch {
	case size > 3*mib:
		return 0.6
	case size > 1*mib:
		return 0.7
	default:
		return 0.8
	}
}

// FitWithin scales w×h down, keeping its aspect ratio, so that neither side
// exceeds maxW×maxH. Sizes already inside the box are returned unchanged.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// EstimateDecodedSize approximates the byte size behind a base64 string.
func EstimateDecodedSize(encoded string) int64 {
	return int64(math.Round(float64(len(encoded)) * 3 / 4))
}

// Compress decodes data, bounds it to MaxWidth×MaxHeight and re-encodes it
// as JPEG. size is the original file size and selects the quality.
func Compress(ctx context.Context, data []byte, size int64) (*Compressed, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the pixel limit", ErrDecode, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), MaxWidth, MaxHeight)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten onto white.
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quality := QualityFor(size)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: int(math.Round(quality * 100))}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	dataURL := jpegURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
	return &Compressed{
		DataURL:       dataURL,
		Width:         w,
		Height:        h,
		Quality:       quality,
		EstimatedSize: EstimateDecodedSize(dataURL),
	}, nil
}

// DataURL renders raw bytes as a data URL of the given content type.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
