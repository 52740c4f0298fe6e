package watermark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// BatchResult tallies one run of the driver.
type BatchResult struct {
	Total     int
	Succeeded int
	Failures  []ItemError
}

// ItemError records a single image that could not be processed.
type ItemError struct {
	Path string
	Err  error
}

// Driver resolves the input path to a set of image files and runs the
// renderer over each of them in sequence.
type Driver struct {
	renderer *Renderer
	logger   *logrus.Logger
	out      io.Writer
}

// NewDriver creates a batch driver around a renderer. Progress and the final
// tally are printed to stdout.
func NewDriver(renderer *Renderer, logger *logrus.Logger) *Driver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Driver{
		renderer: renderer,
		logger:   logger,
		out:      os.Stdout,
	}
}

// OutputDir returns the directory watermarked copies are written to for a
// given input directory: a sibling named after it with a _watermark suffix.
func OutputDir(inputDir string) string {
	inputDir = filepath.Clean(inputDir)
	return filepath.Join(inputDir, filepath.Base(inputDir)+"_watermark")
}

// Run processes the file or directory at inputPath. It returns an error only
// for the two upfront validation failures (missing path, no image files);
// per-image failures are recorded in the result and do not abort the run.
func (d *Driver) Run(inputPath string) (*BatchResult, error) {
	files, baseDir, err := d.resolveInput(inputPath)
	if err != nil {
		return nil, err
	}

	outputDir := OutputDir(baseDir)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	spec := d.renderer.spec
	fmt.Fprintf(d.out, "found %d image file(s)\n", len(files))
	fmt.Fprintf(d.out, "output directory: %s\n", outputDir)
	fmt.Fprintf(d.out, "font size: %d, color: %s, position: %s\n",
		spec.FontSize, spec.ColorName, spec.Anchor)
	fmt.Fprintln(d.out, strings.Repeat("-", 50))

	result := &BatchResult{Total: len(files)}
	for _, file := range files {
		name := filepath.Base(file)
		fmt.Fprintf(d.out, "processing: %s\n", name)

		if err := d.renderer.ProcessFile(file, filepath.Join(outputDir, name)); err != nil {
			result.Failures = append(result.Failures, ItemError{Path: file, Err: err})
			d.logger.WithError(err).WithField("file", file).Error("Failed to process image")
			continue
		}
		result.Succeeded++
	}

	fmt.Fprintln(d.out, strings.Repeat("-", 50))
	fmt.Fprintf(d.out, "done: %d/%d images watermarked\n", result.Succeeded, result.Total)

	return result, nil
}

// resolveInput turns the input path into the list of image files to process
// and the directory the output directory is derived from.
func (d *Driver) resolveInput(inputPath string) (files []string, baseDir string, err error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("input path does not exist: %s", inputPath)
		}
		return nil, "", fmt.Errorf("reading input path: %w", err)
	}

	if !info.IsDir() {
		return []string{inputPath}, filepath.Dir(inputPath), nil
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading input directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(inputPath, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no image files found in %s", inputPath)
	}
	return files, inputPath, nil
}
