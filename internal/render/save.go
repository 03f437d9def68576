package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Save encodes img by file extension: .webp (lossless) or .tga.
func Save(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" && ext != ".tga" {
		return fmt.Errorf("save %s: unsupported image format %q", path, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()

	switch ext {
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = tga.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
