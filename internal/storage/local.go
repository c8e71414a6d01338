package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalArchive writes each uploaded PDF to the menus directory,
// filename = restaurant name. Re-uploads overwrite.
type LocalArchive struct {
	dir string
}

func NewLocalArchive(dir string) *LocalArchive {
	return &LocalArchive{dir: dir}
}

func (a *LocalArchive) Store(_ context.Context, restaurantName string, data []byte) (string, error) {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(restaurantName)
	path := filepath.Join(a.dir, name+".pdf")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
