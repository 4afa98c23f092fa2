package listing

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/denysvitali/webtree/internal/models"
)

// ListDirectory returns the visible children of dir split into folders and
// files, each in name order. A directory that cannot be read for lack of
// permission lists as empty.
func ListDirectory(dir string, excl Exclusions) (folders, files []models.DirectoryEntry, err error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	for _, de := range dirEntries {
		if excl.ShouldExclude(de.Name()) {
			continue
		}

		entry, err := Classify(filepath.Join(dir, de.Name()))
		if err != nil {
			// dangling links, sockets and the like are not listed
			continue
		}

		if entry.IsDir() {
			folders = append(folders, entry)
		} else {
			files = append(files, entry)
		}
	}

	return folders, files, nil
}
