package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/denysvitali/webtree/internal/models"
)

// ErrUnlisted is returned by Classify for objects that are neither a
// directory nor a regular file.
var ErrUnlisted = errors.New("not a directory or regular file")

const (
	kib = 1024
	mib = 1024 * 1024
)

// FormatSize renders a byte count as B, K or M. Larger units are truncated,
// never rounded: 1535 bytes is "1K".
func FormatSize(size int64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%dB", size)
	case size < mib:
		return fmt.Sprintf("%dK", size/kib)
	default:
		return fmt.Sprintf("%dM", size/mib)
	}
}

// Classify stats path, following symlinks.
func Classify(path string) (models.DirectoryEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.DirectoryEntry{}, err
	}

	entry := models.DirectoryEntry{
		Name:     filepath.Base(path),
		Modified: info.ModTime(),
	}

	switch {
	case info.IsDir():
		entry.Kind = models.KindFolder
	case info.Mode().IsRegular():
		entry.Kind = models.KindFile
		entry.Size = info.Size()
	default:
		return models.DirectoryEntry{}, fmt.Errorf("%s: %w", path, ErrUnlisted)
	}

	return entry, nil
}
