// Package imgstack is the glue between image files on disk and the 8-bit
// channel planes the analysis engine consumes. It loads single images or
// numbered directories as stacks, extracts color channels, and encodes
// derived planes back to disk.
package imgstack

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	// Decoders for the supported stack formats.
	_ "image/jpeg"
	_ "image/png"

	"colocalizer/internal/models"
)

// Load reads a stack from path. A regular file becomes a single-slice
// stack; a directory is read as a stack of its image files, ordered by
// the numeric part of their filenames so slice order survives arbitrary
// directory listings.
func Load(path string) (*LoadedStack, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		return &LoadedStack{
			Title:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path:   path,
			Images: []image.Image{img},
		}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no image files found in %s", path)
	}

	// Sort by the numeric part of the filename to keep slice order.
	sort.Slice(names, func(i, j int) bool {
		return extractNumber(names[i]) < extractNumber(names[j])
	})

	images := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := loadImage(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return &LoadedStack{
		Title:  filepath.Base(path),
		Path:   path,
		Images: images,
	}, nil
}

// LoadedStack is a decoded image stack before channel extraction.
type LoadedStack struct {
	Title  string
	Path   string
	Images []image.Image
}

// IsRGB reports whether every slice carries color information. Grayscale
// stacks have no channels to split.
func (s *LoadedStack) IsRGB() bool {
	for _, img := range s.Images {
		switch img.(type) {
		case *image.Gray, *image.Gray16:
			return false
		}
	}
	return true
}

// Channel extracts one 8-bit channel plane per slice. For color images
// the requested component is taken directly; grayscale images yield the
// same plane for every channel.
func (s *LoadedStack) Channel(ch models.Channel) *models.Stack {
	planes := make([]*models.Plane, len(s.Images))
	for i, img := range s.Images {
		planes[i] = channelPlane(img, ch)
	}
	return &models.Stack{
		Title:  s.Title,
		Path:   s.Path,
		Planes: planes,
	}
}

func channelPlane(img image.Image, ch models.Channel) *models.Plane {
	bounds := img.Bounds()
	plane := models.NewPlane(bounds.Dx(), bounds.Dy())
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			var v uint32
			switch ch {
			case models.Red:
				v = r
			case models.Green:
				v = g
			case models.Blue:
				v = b
			}
			// 16-bit color component to 8-bit sample.
			plane.Set(x, y, uint8(v>>8))
		}
	}
	return plane
}

// extractNumber extracts the numeric part from a filename.
func extractNumber(filename string) int {
	numStr := ""
	for _, c := range filepath.Base(filename) {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}
	if numStr != "" {
		if num, err := strconv.Atoi(numStr); err == nil {
			return num
		}
	}
	return 0
}

// loadImage decodes an image from a file.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
