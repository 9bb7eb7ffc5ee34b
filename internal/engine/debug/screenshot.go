package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes PNG screenshots into a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves raw RGBA pixels read back from OpenGL.
// Rows are flipped since OpenGL has its origin at the bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img under a timestamped name and returns the path.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	return sc.SaveAs(sc.GenerateFilename(), img)
}

// SaveAs writes img to filename, creating the output directory if needed.
func (sc *ScreenshotCapture) SaveAs(filename string, img image.Image) (string, error) {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the timestamped path the next capture will use.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
