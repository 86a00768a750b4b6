package asset

import (
	"fmt"
	"image"
	"os"

	// Texture formats the editor accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/ref"
)

// Texture is a decoded image asset. It stands in for the GPU resource
// wrapper: Dispose drops the pixel data deterministically when the last
// owner releases.
type Texture struct {
	ref.RefCounted

	path   string
	format string
	width  int
	height int

	img image.Image
}

// Path returns the file the texture was decoded from.
func (t *Texture) Path() string {
	return t.path
}

// Format returns the decoded image format name ("png", "webp", ...).
func (t *Texture) Format() string {
	return t.format
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// Image returns the decoded pixels, or nil after disposal.
func (t *Texture) Image() image.Image {
	return t.img
}

// Name implements the scene Object naming convention for assets.
func (t *Texture) Name() string {
	return t.path
}

// Dispose drops the pixel data. Runs once, when the last owner releases.
func (t *Texture) Dispose() {
	t.img = nil
}

// decodeTexture reads and decodes one texture file.
func decodeTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}

	b := img.Bounds()
	return &Texture{
		path:   path,
		format: format,
		width:  b.Dx(),
		height: b.Dy(),
		img:    img,
	}, nil
}
