package outcome

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverDirs returns the immediate subdirectories of root whose names start
// with prefix, in directory listing order. Symlinks to directories count.
func DiscoverDirs(root, prefix string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		path := filepath.Join(root, e.Name())
		if isDir(e, path) {
			dirs = append(dirs, path)
		}
	}
	return dirs, nil
}

// listFiles returns the non-directory entries of dir in listing order.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if isDir(e, path) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
