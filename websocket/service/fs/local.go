package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type LocalFileSystem struct {
	tree   treeRemover
	logger *zap.Logger
}

func NewLocalFileSystem(logger *zap.Logger) *LocalFileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalFileSystem{tree: osTree{}, logger: logger}
}

// List implements FileSystem.
func (l *LocalFileSystem) List(dirPath string) (*DirectoryListing, error) {
	const op = "list"

	if dirPath == "" {
		return nil, newError(op, dirPath, KindNotFound, errNotExist)
	}
	abs, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, ioError(op, dirPath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, newError(op, abs, KindNotFound, errNotExist)
		}
		return nil, ioError(op, abs, err)
	}
	if !info.IsDir() {
		return nil, newError(op, abs, KindNotADirectory, errNotDirectory)
	}

	dir, err := os.Open(abs)
	if err != nil {
		return nil, ioError(op, abs, err)
	}
	defer dir.Close()

	// File.ReadDir keeps enumeration order, unlike os.ReadDir.
	dirEntries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, ioError(op, abs, err)
	}

	entries := make([]*FileEntry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		info, err := dirEntry.Info()
		if err != nil {
			return nil, ioError(op, filepath.Join(abs, dirEntry.Name()), err)
		}
		entries = append(entries, newFileEntry(abs, dirEntry.Name(), info, filepath.Join))
	}
	sortEntries(entries)

	return &DirectoryListing{Files: entries, Path: abs}, nil
}

// CreateDirectory implements FileSystem.
func (l *LocalFileSystem) CreateDirectory(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return ioError("create_directory", dirPath, err)
	}
	return nil
}

// Delete implements FileSystem.
func (l *LocalFileSystem) Delete(target string, opts DeleteOptions) error {
	const op = "delete"

	info, err := os.Lstat(target)
	if err != nil {
		return ioError(op, target, err)
	}

	if !info.IsDir() {
		if err := os.Remove(target); err != nil {
			return ioError(op, target, err)
		}
		return nil
	}

	if err := removeTree(l.tree, target, filepath.Join, opts.CollectErrors); err != nil {
		if opts.CollectErrors {
			l.logger.Warn("recursive delete incomplete",
				zap.String("path", target),
				zap.Int("failures", len(multierr.Errors(err))))
		}
		return ioError(op, target, err)
	}
	return nil
}

// Copy implements FileSystem.
func (l *LocalFileSystem) Copy(src, dest string) error {
	const op = "copy"

	srcInfo, err := os.Stat(src)
	if err != nil {
		return ioError(op, src, err)
	}
	if srcInfo.IsDir() {
		return newError(op, src, KindIO, errIsDirectory)
	}
	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(srcInfo, destInfo) {
		return newError(op, dest, KindIO, errSameFile)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return ioError(op, src, err)
	}
	defer srcFile.Close()

	perm := srcInfo.Mode().Perm()
	destFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return ioError(op, dest, err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return ioError(op, dest, err)
	}
	if err := destFile.Close(); err != nil {
		return ioError(op, dest, err)
	}

	// O_CREATE only applies perm to new files.
	if err := os.Chmod(dest, perm); err != nil {
		return ioError(op, dest, err)
	}
	return nil
}

// Move implements FileSystem.
func (l *LocalFileSystem) Move(src, dest string) error {
	if err := os.Rename(src, dest); err != nil {
		return ioError("move", src, err)
	}
	return nil
}

// Rename implements FileSystem.
func (l *LocalFileSystem) Rename(oldPath, newName string) error {
	newPath, err := localPaths.renameTarget(oldPath, newName)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return ioError("rename", oldPath, err)
	}
	return nil
}
