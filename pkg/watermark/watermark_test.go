package watermark

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func newTestRenderer(t *testing.T, spec Spec) *Renderer {
	t.Helper()
	logger := newTestLogger()
	fm := NewFontManager(logger)
	fm.SetCandidatePaths(nil) // force the built-in font for determinism
	return NewRenderer(spec, fm.LoadFace(spec.FontSize), logger)
}

func defaultTestSpec() Spec {
	return Spec{
		FontSize:  24,
		Color:     color.NRGBA{255, 255, 255, 255},
		ColorName: "white",
		Anchor:    AnchorBottomRight,
		Quality:   95,
	}
}

func savePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{30, 60, 90, 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("saving fixture %s: %v", path, err)
	}
}

func TestStampChangesPixels(t *testing.T) {
	r := newTestRenderer(t, defaultTestSpec())

	src := imaging.New(400, 200, color.NRGBA{30, 60, 90, 255})
	stamped := r.Stamp(src, `2023\10\15`)

	if stamped.Bounds() != src.Bounds() {
		t.Fatalf("stamped bounds = %v, want %v", stamped.Bounds(), src.Bounds())
	}

	changed := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			if stamped.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("Stamp left the image untouched")
	}
}

func TestStampLeavesSourceUntouched(t *testing.T) {
	r := newTestRenderer(t, defaultTestSpec())

	src := imaging.New(400, 200, color.NRGBA{30, 60, 90, 255})
	r.Stamp(src, `2023\10\15`)

	want := color.NRGBA{30, 60, 90, 255}
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			if src.NRGBAAt(x, y) != want {
				t.Fatalf("source pixel (%d, %d) was modified", x, y)
			}
		}
	}
}

func TestWatermarkTextFallsBackToCurrentDate(t *testing.T) {
	r := newTestRenderer(t, defaultTestSpec())
	r.now = func() time.Time {
		return time.Date(2023, time.October, 15, 12, 0, 0, 0, time.UTC)
	}

	path := filepath.Join(t.TempDir(), "plain.png")
	savePNG(t, path, 32, 32)

	if got, want := r.watermarkText(path), "2023年10月15日"; got != want {
		t.Errorf("watermarkText = %q, want %q", got, want)
	}
}

func TestWatermarkTextFallbackIsZeroPadded(t *testing.T) {
	r := newTestRenderer(t, defaultTestSpec())
	r.now = func() time.Time {
		return time.Date(2023, time.March, 5, 12, 0, 0, 0, time.UTC)
	}

	path := filepath.Join(t.TempDir(), "plain.png")
	savePNG(t, path, 32, 32)

	if got, want := r.watermarkText(path), "2023年03月05日"; got != want {
		t.Errorf("watermarkText = %q, want %q", got, want)
	}
}

func TestProcessFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "photo.png")
	out := filepath.Join(dir, "photo_out.png")
	savePNG(t, in, 320, 240)

	r := newTestRenderer(t, defaultTestSpec())
	if err := r.ProcessFile(in, out); err != nil {
		t.Fatalf("ProcessFile returned error: %v", err)
	}

	result, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	if result.Bounds().Dx() != 320 || result.Bounds().Dy() != 240 {
		t.Errorf("output dimensions = %dx%d, want 320x240",
			result.Bounds().Dx(), result.Bounds().Dy())
	}
}

func TestProcessFileFlattensTransparency(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "clear.png")
	out := filepath.Join(dir, "clear_out.png")

	// Fully transparent source; the output must still be opaque
	img := imaging.New(200, 100, color.NRGBA{0, 0, 0, 0})
	if err := imaging.Save(img, in); err != nil {
		t.Fatalf("saving fixture: %v", err)
	}

	r := newTestRenderer(t, defaultTestSpec())
	if err := r.ProcessFile(in, out); err != nil {
		t.Fatalf("ProcessFile returned error: %v", err)
	}

	result, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	flat := imaging.Clone(result)
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if a := flat.NRGBAAt(x, y).A; a != 255 {
				t.Fatalf("output pixel (%d, %d) alpha = %d, want 255", x, y, a)
			}
		}
	}
}

func TestProcessFileJPEGOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "photo.png")
	out := filepath.Join(dir, "photo.jpg")
	savePNG(t, in, 320, 240)

	r := newTestRenderer(t, defaultTestSpec())
	if err := r.ProcessFile(in, out); err != nil {
		t.Fatalf("ProcessFile returned error: %v", err)
	}
	if _, err := imaging.Open(out); err != nil {
		t.Errorf("output is not a decodable JPEG: %v", err)
	}
}

func TestProcessFileCorruptInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.jpg")
	out := filepath.Join(dir, "broken_out.jpg")
	if err := writeFile(in, []byte("this is not an image")); err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer(t, defaultTestSpec())
	if err := r.ProcessFile(in, out); err == nil {
		t.Error("expected error for corrupt input")
	}
}

func TestSpecValidate(t *testing.T) {
	valid := defaultTestSpec()
	if err := valid.Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}

	bad := []Spec{
		{FontSize: 0, Quality: 95},
		{FontSize: -5, Quality: 95},
		{FontSize: 36, Quality: 0},
		{FontSize: 36, Quality: 101},
	}
	for _, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("spec %+v expected validation error", s)
		}
	}
}
