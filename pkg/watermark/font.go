package watermark

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager loads a font face for the watermark by trying an ordered list
// of candidate font files and falling back to a built-in font.
type FontManager struct {
	candidatePaths []string
	logger         *logrus.Logger
}

// NewFontManager creates a font manager with the default candidate paths.
func NewFontManager(logger *logrus.Logger) *FontManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &FontManager{
		candidatePaths: DefaultFontPaths(),
		logger:         logger,
	}
}

// DefaultFontPaths returns the default ordered list of candidate font files.
func DefaultFontPaths() []string {
	return []string{
		"arial.ttf",
		"/System/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Windows/Fonts/arial.ttf",
	}
}

// SetCandidatePaths replaces the candidate font file list.
func (fm *FontManager) SetCandidatePaths(paths []string) {
	fm.candidatePaths = paths
}

// LoadFace returns a font face at the given size. Candidate font files are
// tried in order; when none can be loaded the embedded Go Regular font is
// used, and as a last resort the fixed-size basicfont face. LoadFace always
// returns a usable face.
func (fm *FontManager) LoadFace(size int) font.Face {
	for _, path := range fm.candidatePaths {
		face, err := loadFaceFromFile(path, size)
		if err != nil {
			continue
		}
		fm.logger.WithField("font", path).Debug("Loaded font")
		return face
	}

	face, err := newFace(goregular.TTF, size)
	if err == nil {
		fm.logger.Info("No system font available, using built-in font")
		return face
	}

	fm.logger.WithError(err).Warn("Built-in font unavailable, using fixed-size font")
	return basicfont.Face7x13
}

func loadFaceFromFile(path string, size int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newFace(data, size)
}

func newFace(data []byte, size int) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
