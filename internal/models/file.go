package models

import "time"

// DateLayout is how modification and creation dates are rendered.
const DateLayout = "2006-01-02"

// EntryKind distinguishes folders from files in a listing
type EntryKind int

const (
	KindFile EntryKind = iota
	KindFolder
)

func (k EntryKind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// DirectoryEntry represents one child of a listed directory
type DirectoryEntry struct {
	Name     string    `json:"name"`
	Kind     EntryKind `json:"kind"`
	Modified time.Time `json:"modified"`
	// Size is only meaningful for files.
	Size int64 `json:"size,omitempty"`
}

// IsDir reports whether the entry is a folder
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == KindFolder
}

// Date returns the modification date in local time
func (e DirectoryEntry) Date() string {
	return e.Modified.Local().Format(DateLayout)
}

// GenerationSummary describes one run of the index generator
type GenerationSummary struct {
	Root        string `json:"root"`
	Directories int    `json:"directories"`
}

// DiskStats holds usage of the filesystem backing a path
type DiskStats struct {
	Path    string  `json:"path"`
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}
