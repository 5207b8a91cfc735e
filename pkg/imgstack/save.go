package imgstack

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"colocalizer/internal/models"
)

// SavePlaneStack encodes a stack of grayscale planes (for example the
// colocalization masks) as numbered PNG files under dir.
func SavePlaneStack(dir string, planes []*models.Plane) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, p := range planes {
		img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: p.At(x, y)})
			}
		}
		if err := savePNG(filepath.Join(dir, fmt.Sprintf("%03d.png", i)), img); err != nil {
			return err
		}
	}
	return nil
}

// SaveImageStack encodes a stack of color plots as numbered PNG files
// under dir.
func SaveImageStack(dir string, images []*image.RGBA) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, img := range images {
		if err := savePNG(filepath.Join(dir, fmt.Sprintf("%03d.png", i)), img); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return file.Close()
}
