package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrPluginDir is returned when a plugin root cannot be walked. It means the
// plugin package is not installed correctly and initialization must stop.
var ErrPluginDir = errors.New("plugin directory unavailable")

// ListFiles returns the absolute path of every file below root, at
// any depth, sorted lexically. It does not filter by name or extension.
func ListFiles(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %v", ErrPluginDir, root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPluginDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPluginDir, abs)
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", ErrPluginDir, abs, err)
	}

	sort.Strings(files)
	return files, nil
}
