package fs

import (
	"os"
	"sort"
	"strings"
	"time"
)

// FileEntry is one immediate child of a listed directory.
type FileEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	IsDir    bool   `json:"is_dir"`
	Size     uint64 `json:"size"`
	Modified string `json:"modified"`
}

// DirectoryListing is the result of one List call.
type DirectoryListing struct {
	Files []*FileEntry `json:"files"`
	Path  string       `json:"path"`
}

type DeleteOptions struct {
	// CollectErrors keeps removing after a failure and reports every
	// failure at the end. By default Delete stops at the first error.
	CollectErrors bool `json:"collectErrors,omitempty"`
}

// FileSystem defines the file-manager operations. Local and remote
// implementations share the same semantics and error kinds.
type FileSystem interface {
	// List returns the immediate children of the directory at path,
	// directories first and then by case-insensitive name.
	List(path string) (*DirectoryListing, error)

	// CreateDirectory creates path and any missing parents. It succeeds if
	// the directory already exists.
	CreateDirectory(path string) error

	// Delete removes a file, or a directory and everything below it.
	Delete(path string, opts DeleteOptions) error

	// Copy copies a single regular file, overwriting dest.
	Copy(src, dest string) error

	// Move renames src to dest using the underlying rename primitive.
	Move(src, dest string) error

	// Rename moves path to newName within the same parent directory.
	Rename(path, newName string) error
}

const modifiedLayout = time.RFC3339Nano

func newFileEntry(dir, name string, info os.FileInfo, join func(...string) string) *FileEntry {
	var size uint64
	if info.Size() > 0 {
		size = uint64(info.Size())
	}
	return &FileEntry{
		Name:     name,
		Path:     join(dir, name),
		IsDir:    info.IsDir(),
		Size:     size,
		Modified: info.ModTime().UTC().Format(modifiedLayout),
	}
}

// sortEntries orders directories before files, then names case-insensitively.
// Equal folded names fall back to byte order; the sort is stable so exact
// duplicates keep their enumeration order.
func sortEntries(entries []*FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
