package repos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileBackend keeps each collection in <Dir>/<collection>.json.
type FileBackend struct {
	Dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{Dir: dir}, nil
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.Dir, collection+".json")
}

func (b *FileBackend) Read(_ context.Context, collection string) ([]byte, error) {
	body, err := os.ReadFile(b.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return body, err
}

// Write replaces the file through a temp file and rename. Every call gets its
// own temp file; the last rename wins.
func (b *FileBackend) Write(_ context.Context, collection string, body []byte) error {
	tmp, err := os.CreateTemp(b.Dir, collection+"-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, b.path(collection)); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
