package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/domain"
)

// Local stores images below a directory that the HTTP server exposes.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Root() string {
	return l.root
}

// Save writes img to root/key. Existing files are kept as is since equal
// keys imply equal content.
func (l *Local) Save(ctx context.Context, key string, img domain.Image) error {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create media directory")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(img.Data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write image")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close image")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "move image into place")
	}
	return nil
}
