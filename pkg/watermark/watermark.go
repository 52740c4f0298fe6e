// Package watermark stamps images with a date-based text watermark derived
// from their EXIF capture date.
package watermark

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	// Register the webp decoder; imaging covers jpeg/png/bmp/tiff/gif itself.
	_ "golang.org/x/image/webp"
)

// shadowOffset is the pixel offset of the drop shadow from the main text.
const shadowOffset = 2

// Spec holds the watermark settings shared by every image in a run.
type Spec struct {
	FontSize  int
	Color     color.NRGBA
	ColorName string
	Anchor    Anchor
	Quality   int
}

// Validate checks the spec for values the renderer cannot work with.
func (s Spec) Validate() error {
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got: %d", s.FontSize)
	}
	if s.Quality < 1 || s.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got: %d", s.Quality)
	}
	return nil
}

// Renderer applies the watermark to individual images.
type Renderer struct {
	spec   Spec
	face   font.Face
	logger *logrus.Logger
	now    func() time.Time
}

// NewRenderer creates a renderer from a spec and a loaded font face.
func NewRenderer(spec Spec, face font.Face, logger *logrus.Logger) *Renderer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Renderer{
		spec:   spec,
		face:   face,
		logger: logger,
		now:    time.Now,
	}
}

// ProcessFile reads the image at inputPath, stamps it, and writes the result
// to outputPath. The output codec is inferred from the destination extension.
func (r *Renderer) ProcessFile(inputPath, outputPath string) error {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}

	stamped := r.Stamp(img, r.watermarkText(inputPath))

	// The output formats carry no alpha, composite over an opaque white
	// background before encoding.
	flat := image.NewRGBA(stamped.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), stamped, stamped.Bounds().Min, draw.Over)

	if err := imaging.Save(flat, outputPath, imaging.JPEGQuality(r.spec.Quality)); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// watermarkText returns the text to stamp on the image at path: the EXIF
// capture date when available, the current date otherwise. The two sources
// use intentionally different formats.
func (r *Renderer) watermarkText(path string) string {
	if date, ok := ReadCaptureDate(path, r.logger); ok {
		return date.Text()
	}
	text := r.now().Format("2006年01月02日")
	r.logger.WithFields(logrus.Fields{
		"file": path,
		"text": text,
	}).Info("No capture date, watermarking with current date")
	return text
}

// Stamp draws the watermark text onto an alpha-capable copy of img and
// returns it. The original image is left untouched.
func (r *Renderer) Stamp(img image.Image, text string) *image.NRGBA {
	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()

	metrics := r.face.Metrics()
	textW := font.MeasureString(r.face, text).Ceil()
	textH := (metrics.Ascent + metrics.Descent).Ceil()

	x, y := ResolvePosition(bounds.Dx(), bounds.Dy(), textW, textH, r.spec.Anchor)

	// Dot sits on the baseline, not the top of the text box.
	baseline := y + metrics.Ascent.Ceil()

	// Drop shadow first, always black even when the main color is black.
	shadow := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{0, 0, 0, 255}),
		Face: r.face,
		Dot:  fixed.P(x+shadowOffset, baseline+shadowOffset),
	}
	shadow.DrawString(text)

	main := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(r.spec.Color),
		Face: r.face,
		Dot:  fixed.P(x, baseline),
	}
	main.DrawString(text)

	return canvas
}
