// Package capture writes rendered frames to PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Capture names and writes frame images.
type Capture struct {
	dir    string
	prefix string
	seq    int
	now    func() time.Time
}

// New creates a capture writing <dir>/<prefix>_<time>_<seq>.png files.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next frame is written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s_%03d.png", c.prefix, c.now().Format("2006-01-02_15-04-05"), c.seq)
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

// ErrEmptyFrame is returned for frames without pixels.
var ErrEmptyFrame = errors.New("empty frame")

// FromPixels converts bottom-up RGBA rows, as read back from OpenGL, into
// an image with the usual top-down orientation.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyFrame, "%dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, errors.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// SavePixels writes a frame read back from OpenGL.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img)
}

// Save writes img and returns its path.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", errors.Wrap(err, "creating output dir")
		}
	}
	filename := c.Filename()
	c.seq++

	file, err := os.Create(filename)
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", errors.Wrap(err, "encoding PNG")
	}
	return filename, nil
}
