package infra

// media.go — disk-backed object storage for product images. Uploads are
// decoded, downscaled and re-encoded as JPEG, then served publicly under
// /media/ by the router. The stored reference is the public URL path.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// maxImageWidth bounds catalog thumbnails; larger uploads are downscaled
// preserving aspect ratio.
const maxImageWidth = 800

// MediaStore writes product images to local disk.
type MediaStore struct {
	basePath string
}

func NewMediaStore(basePath string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "products"), 0755); err != nil {
		return nil, fmt.Errorf("media: create storage dir: %w", err)
	}
	return &MediaStore{basePath: basePath}, nil
}

// BasePath is the directory the router mounts under /media.
func (m *MediaStore) BasePath() string { return m.basePath }

// Writable verifies the storage directory still accepts writes, e.g. after
// the backing disk was remounted read-only or filled up.
func (m *MediaStore) Writable() error {
	marker := filepath.Join(m.basePath, ".writecheck")
	if err := os.WriteFile(marker, []byte("ok"), 0644); err != nil {
		return err
	}
	return os.Remove(marker)
}

// SaveProductImage stores an uploaded image and returns its public URL path.
func (m *MediaStore) SaveProductImage(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("media: decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	name := fmt.Sprintf("%s.jpg", uuid.New())
	dest := filepath.Join(m.basePath, "products", name)
	if err := imaging.Save(img, dest, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("media: save image: %w", err)
	}
	return "/media/products/" + name, nil
}
