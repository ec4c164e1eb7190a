package sceneconf

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/fbui/pixel"
	"github.com/gogpu/fbui/raster"
)

// LoadPixmap decodes a PNG, JPEG, BMP or WebP file and converts it to depth
// d. If w and h are positive and differ from the image size, the image is
// scaled to w×h first.
func LoadPixmap(path string, w, h int, d pixel.Depth) (*raster.Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sceneconf: decode %s: %w", path, err)
	}
	b := img.Bounds()
	if w > 0 && h > 0 && (b.Dx() != w || b.Dy() != h) {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		img = dst
	}
	logger().Debug("sceneconf: image loaded", "path", path, "format", format,
		"w", img.Bounds().Dx(), "h", img.Bounds().Dy())
	return raster.PixmapFromImage(img, d), nil
}
