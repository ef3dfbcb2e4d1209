package app

import "io"

// ImageStore persists uploaded entity images. Implemented by storage.FileStore.
type ImageStore interface {
	Save(r io.Reader) (string, error)
	Remove(name string) error
}
