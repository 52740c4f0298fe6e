package watermark

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// exifTimeLayout is the timestamp format used by the EXIF DateTimeOriginal tag.
const exifTimeLayout = "2006:01:02 15:04:05"

// CaptureDate is the day an image was shot, read from its EXIF metadata.
type CaptureDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Text renders the capture date as watermark text. Components are not
// zero-padded, so March 5th 2023 comes out as `2023\3\5`.
func (d CaptureDate) Text() string {
	return fmt.Sprintf("%d\\%d\\%d", d.Year, int(d.Month), d.Day)
}

func parseCaptureDate(s string) (CaptureDate, error) {
	t, err := time.Parse(exifTimeLayout, s)
	if err != nil {
		return CaptureDate{}, err
	}
	return CaptureDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// ReadCaptureDate reads the DateTimeOriginal tag from the image at path.
// It never fails: any problem (unreadable file, no EXIF block, missing or
// malformed tag) is logged and reported as "no date" via the second return.
func ReadCaptureDate(path string, logger *logrus.Logger) (CaptureDate, bool) {
	f, err := os.Open(path)
	if err != nil {
		logger.WithError(err).WithField("file", path).Warn("Cannot open image for metadata")
		return CaptureDate{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		logger.WithError(err).WithField("file", path).Debug("No EXIF metadata")
		return CaptureDate{}, false
	}

	tag, err := x.Get(exif.DateTimeOriginal)
	if err != nil {
		logger.WithField("file", path).Debug("No DateTimeOriginal tag")
		return CaptureDate{}, false
	}

	value, err := tag.StringVal()
	if err != nil || value == "" {
		logger.WithField("file", path).Debug("Empty DateTimeOriginal tag")
		return CaptureDate{}, false
	}

	date, err := parseCaptureDate(value)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"file":  path,
			"value": value,
		}).Warn("Unparseable DateTimeOriginal tag")
		return CaptureDate{}, false
	}

	return date, true
}
