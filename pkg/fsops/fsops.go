// Package fsops is the narrow filesystem collaborator for the batch
// pipeline: enumerate source documents, move finished output into place,
// and delete working folders. The interface keeps scheduler tests free
// to substitute a fake.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Filesystem is the set of operations the pipeline needs from disk.
type Filesystem interface {
	ListByExt(dir, ext string) ([]string, error)
	Move(src, dstDir, name string) (string, error)
	RemoveAll(path string) error
	MkdirAll(path string) error
}

// OS implements Filesystem against the local disk.
type OS struct{}

// ListByExt returns the sorted paths of regular files in dir whose
// extension matches ext (case-insensitive).
func (OS) ListByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Move places src into dstDir under name, appending -2, -3, ... while the
// name is taken, so concurrent workers writing the same display name
// never collide. Returns the final path.
func (OS) Move(src, dstDir, name string) (string, error) {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", fmt.Errorf("error creating %s: %w", dstDir, err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	dst := filepath.Join(dstDir, name)
	for n := 2; ; n++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(dstDir, fmt.Sprintf("%s-%d%s", base, n, ext))
	}

	if err := os.Rename(src, dst); err != nil {
		// Rename fails across devices; fall back to copy+delete.
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("error moving file to %s: %w", dst, err)
		}
		_ = os.Remove(src)
	}
	return dst, nil
}

// RemoveAll deletes a file or folder tree.
func (OS) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates a folder and any missing parents.
func (OS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
