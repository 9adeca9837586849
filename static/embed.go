// Package static holds the page and angel images served by the blink server.
package static

import (
	"embed"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

//go:embed index.html images/*.png
var files embed.FS

func Embedded() fs.FS {
	return files
}

// Open returns the asset store rooted at folder, or the embedded assets when folder
// is empty.
func Open(folder string) (fs.FS, error) {
	if folder == "" {
		return files, nil
	}

	info, err := os.Stat(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "public folder %s", folder)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("public folder %s is not a directory", folder)
	}

	return os.DirFS(folder), nil
}
