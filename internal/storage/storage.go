// Package storage persists uploaded entity images on local disk. Every
// accepted upload is normalized to JPEG and stored next to a fixed-size
// thumbnail, so handlers never serve user-supplied bytes verbatim.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

const (
	thumbnailSize   = 200
	thumbnailSuffix = "_thumb"
)

// FileStore writes images under a single root directory.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Save decodes the upload, re-encodes it as JPEG and writes it together with
// a thumbnail. It returns the stored file name (not a path). A body that is
// not a decodable image is rejected as a validation error.
func (s *FileStore) Save(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperrors.ValidationError("uploaded file is not a valid image").WithField("cause", err.Error())
	}

	name := uuid.New().String() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.root, name)); err != nil {
		return "", apperrors.InternalError("failed to store image", err)
	}

	thumb := imaging.Thumbnail(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	if err := imaging.Save(thumb, s.thumbPath(name)); err != nil {
		// roll back the original so we never keep a half-written pair
		_ = os.Remove(filepath.Join(s.root, name))
		return "", apperrors.InternalError("failed to store image thumbnail", err)
	}

	return name, nil
}

// Remove deletes a stored image and its thumbnail. Missing files are not an
// error, so replacing an image that was already cleaned up stays idempotent.
func (s *FileStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	if err := os.Remove(s.thumbPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image thumbnail: %w", err)
	}
	return nil
}

// Path returns the absolute path of a stored image, for serving.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *FileStore) thumbPath(name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	return filepath.Join(s.root, base+thumbnailSuffix+ext)
}
