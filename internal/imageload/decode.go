package imageload

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Painting is a decoded artwork image ready for the viewer.
type Painting struct {
	Path   string
	Image  image.Image
	Width  int // stored pixel width, before orientation
	Height int // stored pixel height, before orientation
	// Orientation is the EXIF orientation tag (1-8). 1 when absent.
	Orientation int
	Format      string
}

// decodeFile reads and decodes one image file.
func decodeFile(path string) (*Painting, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	orientation := 1
	if format == "jpeg" {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking file for exif: %w", err)
		}
		orientation = readOrientation(file)
	}

	b := img.Bounds()
	return &Painting{
		Path:        path,
		Image:       img,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Orientation: orientation,
		Format:      format,
	}, nil
}

// readOrientation returns the EXIF orientation tag of r, or 1 when the
// data is missing or out of range.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r) // EXIF might not be present
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}
