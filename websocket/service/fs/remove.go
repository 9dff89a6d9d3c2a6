package fs

import (
	"os"

	"go.uber.org/multierr"
)

// treeRemover is the subset of a filesystem needed to remove a tree one
// entry at a time. *sftp.Client satisfies it as is.
type treeRemover interface {
	ReadDir(path string) ([]os.FileInfo, error)
	Remove(path string) error
}

// removeTree deletes root and everything below it, children first. Without
// collect it stops at the first failure, leaving whatever was not reached
// in place. With collect it visits every entry and returns all failures.
func removeTree(t treeRemover, root string, join func(...string) string, collect bool) error {
	children, err := t.ReadDir(root)
	if err != nil {
		return err
	}

	var errs error
	for _, child := range children {
		p := join(root, child.Name())

		var err error
		if child.IsDir() {
			err = removeTree(t, p, join, collect)
		} else {
			err = t.Remove(p)
		}
		if err != nil {
			if !collect {
				return err
			}
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return errs
	}

	return t.Remove(root)
}

// osTree reads directories without following symlinks, so a link to a
// directory is removed as a link.
type osTree struct{}

func (osTree) ReadDir(name string) ([]os.FileInfo, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdir(-1)
}

func (osTree) Remove(name string) error {
	return os.Remove(name)
}
