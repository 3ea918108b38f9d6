package renderer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// SavePNG writes img to filename as a PNG, creating parent directories as needed
func SavePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}
