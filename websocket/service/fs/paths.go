package fs

import (
	"os"
	"path"
	"path/filepath"
)

// pathSyntax groups the path helpers of one backend: the host's separator
// rules locally, slash-separated paths over SFTP.
type pathSyntax struct {
	clean func(string) string
	dir   func(string) string
	join  func(...string) string
	isSep func(uint8) bool
}

var (
	localPaths  = pathSyntax{filepath.Clean, filepath.Dir, filepath.Join, os.IsPathSeparator}
	remotePaths = pathSyntax{path.Clean, path.Dir, path.Join, func(c uint8) bool { return c == '/' }}
)

// renameTarget returns parent(p)/newName.
func (s pathSyntax) renameTarget(p, newName string) (string, error) {
	const op = "rename"

	if p == "" {
		return "", newError(op, p, KindInvalidPath, errNoParent)
	}
	clean := s.clean(p)
	parent := s.dir(clean)
	if parent == clean {
		return "", newError(op, p, KindInvalidPath, errNoParent)
	}

	if newName == "" || newName == "." || newName == ".." {
		return "", newError(op, newName, KindInvalidPath, errBadName)
	}
	for i := 0; i < len(newName); i++ {
		if s.isSep(newName[i]) {
			return "", newError(op, newName, KindInvalidPath, errBadName)
		}
	}

	return s.join(parent, newName), nil
}
