// Package imagex shrinks dish photos before they are stored.
//
// Compress decodes any supported image, bounds its longer side, and
// re-encodes it as JPEG, lowering quality until the encoding fits a byte
// budget. If the quality floor is not enough, one more pass at a smaller
// scale runs; its output is accepted even when it still exceeds the budget.
package imagex

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when the input is not a decodable image.
var ErrDecode = errors.New("decode image")

const dataURLPrefix = "data:image/jpeg;base64,"

// Options tune Compress. Qualities are JPEG percentages.
type Options struct {
	// MaxBytes is the size budget measured by EstimateSize.
	MaxBytes int
	// MaxDimension bounds the longer side.
	MaxDimension int
	StartQuality int
	MinQuality   int
	QualityStep  int
	// FallbackScale shrinks both sides once more when MinQuality is not enough.
	FallbackScale   float64
	FallbackQuality int
}

// DefaultOptions returns a 256 KiB budget, 1200px bound, qualities 90 down
// to 10 in steps of 10 and a 0.8 fallback at quality 70.
func DefaultOptions() Options {
	return Options{
		MaxBytes:        256 * 1024,
		MaxDimension:    1200,
		StartQuality:    90,
		MinQuality:      10,
		QualityStep:     10,
		FallbackScale:   0.8,
		FallbackQuality: 70,
	}
}

// Result is a compressed image.
type Result struct {
	Data          []byte
	Width, Height int
	// Quality the returned encoding was produced with.
	Quality       int
	EstimatedSize int
	DataURL       string
	// FallbackApplied is set when the extra downscale pass ran.
	FallbackApplied bool
}

// EstimateSize approximates decoded bytes from the length of the base64
// data URL text.
func EstimateSize(dataURL string) int {
	return len(dataURL) * 3 / 4
}

// DataURL renders JPEG bytes as a data URL.
func DataURL(jpegData []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(jpegData)
}

// Compress runs the pipeline with opts. Zero fields take their defaults.
func Compress(raw []byte, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), opts.MaxDimension)
	canvas := resample(src, w, h)

	quality := opts.StartQuality
	res, err := encode(canvas, quality)
	if err != nil {
		return nil, err
	}
	for res.EstimatedSize > opts.MaxBytes && quality > opts.MinQuality {
		quality = max(quality-opts.QualityStep, opts.MinQuality)
		if res, err = encode(canvas, quality); err != nil {
			return nil, err
		}
	}
	if res.EstimatedSize <= opts.MaxBytes {
		return res, nil
	}

	fw := max(1, int(math.Round(float64(w)*opts.FallbackScale)))
	fh := max(1, int(math.Round(float64(h)*opts.FallbackScale)))
	res, err = encode(resample(src, fw, fh), opts.FallbackQuality)
	if err != nil {
		return nil, err
	}
	res.FallbackApplied = true
	return res, nil
}

func withDefaults(o Options) Options {
	d := DefaultOptions()
	if o.MaxBytes <= 0 {
		o.MaxBytes = d.MaxBytes
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = d.MaxDimension
	}
	if o.StartQuality <= 0 {
		o.StartQuality = d.StartQuality
	}
	if o.MinQuality <= 0 {
		o.MinQuality = d.MinQuality
	}
	if o.QualityStep <= 0 {
		o.QualityStep = d.QualityStep
	}
	if o.FallbackScale <= 0 || o.FallbackScale >= 1 {
		o.FallbackScale = d.FallbackScale
	}
	if o.FallbackQuality <= 0 {
		o.FallbackQuality = d.FallbackQuality
	}
	return o
}

// fit bounds the longer side by limit keeping the aspect ratio; the other
// side is rounded to the nearest pixel.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, int(math.Round(float64(h)*float64(limit)/float64(w))))
	}
	return max(1, int(math.Round(float64(w)*float64(limit)/float64(h)))), limit
}

// resample draws src onto a white w×h canvas. JPEG has no alpha, so
// transparent pixels end up white.
func resample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Dx() == w && sb.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

func encode(img *image.RGBA, quality int) (*Result, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg at quality %d: %w", quality, err)
	}
	url := DataURL(buf.Bytes())
	b := img.Bounds()
	return &Result{
		Data:          buf.Bytes(),
		Width:         b.Dx(),
		Height:        b.Dy(),
		Quality:       quality,
		EstimatedSize: EstimateSize(url),
		DataURL:       url,
	}, nil
}
