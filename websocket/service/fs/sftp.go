package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
)

const posixRenameExtension = "posix-rename@openssh.com"

// SFTPFileSystem runs the same operations as LocalFileSystem against a
// remote host. Closing it ends the SFTP session only; the SSH connection
// underneath belongs to whoever dialed it.
type SFTPFileSystem struct {
	*sftp.Client
	logger *zap.Logger
}

func NewSFTPFileSystem(sftpClient *sftp.Client, logger *zap.Logger) *SFTPFileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SFTPFileSystem{
		Client: sftpClient,
		logger: logger,
	}
}

// List implements FileSystem.
func (s *SFTPFileSystem) List(dirPath string) (*DirectoryListing, error) {
	const op = "list"

	if dirPath == "" {
		return nil, newError(op, dirPath, KindNotFound, errNotExist)
	}

	info, err := s.Client.Stat(dirPath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, newError(op, dirPath, KindNotFound, errNotExist)
		}
		return nil, ioError(op, dirPath, err)
	}
	if !info.IsDir() {
		return nil, newError(op, dirPath, KindNotADirectory, errNotDirectory)
	}

	abs, err := s.Client.RealPath(dirPath)
	if err != nil {
		return nil, ioError(op, dirPath, err)
	}

	files, err := s.Client.ReadDir(abs)
	if err != nil {
		return nil, ioError(op, abs, err)
	}

	entries := make([]*FileEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, newFileEntry(abs, file.Name(), file, path.Join))
	}
	sortEntries(entries)

	return &DirectoryListing{Files: entries, Path: abs}, nil
}

// CreateDirectory implements FileSystem.
func (s *SFTPFileSystem) CreateDirectory(dirPath string) error {
	if err := s.Client.MkdirAll(dirPath); err != nil {
		return ioError("create_directory", dirPath, err)
	}
	return nil
}

// Delete implements FileSystem.
func (s *SFTPFileSystem) Delete(target string, opts DeleteOptions) error {
	const op = "delete"

	info, err := s.Client.Lstat(target)
	if err != nil {
		return ioError(op, target, err)
	}

	if !info.IsDir() {
		if err := s.Client.Remove(target); err != nil {
			return ioError(op, target, err)
		}
		return nil
	}

	if err := removeTree(s.Client, target, path.Join, opts.CollectErrors); err != nil {
		return ioError(op, target, err)
	}
	return nil
}

// Copy implements FileSystem.
func (s *SFTPFileSystem) Copy(src, dest string) error {
	const op = "copy"

	srcInfo, err := s.Client.Stat(src)
	if err != nil {
		return ioError(op, src, err)
	}
	if srcInfo.IsDir() {
		return newError(op, src, KindIO, errIsDirectory)
	}
	if same, err := s.sameFile(src, dest); err != nil {
		return ioError(op, dest, err)
	} else if same {
		return newError(op, dest, KindIO, errSameFile)
	}

	srcFile, err := s.Client.Open(src)
	if err != nil {
		return ioError(op, src, err)
	}
	defer srcFile.Close()

	destFile, err := s.Client.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
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

	if err := s.Client.Chmod(dest, srcInfo.Mode().Perm()); err != nil {
		return ioError(op, dest, err)
	}
	return nil
}

// sameFile reports whether dest already exists and resolves to src.
func (s *SFTPFileSystem) sameFile(src, dest string) (bool, error) {
	if _, err := s.Client.Stat(dest); err != nil {
		return false, nil
	}
	srcReal, err := s.Client.RealPath(src)
	if err != nil {
		return false, err
	}
	destReal, err := s.Client.RealPath(dest)
	if err != nil {
		return false, err
	}
	return srcReal == destReal, nil
}

// Move implements FileSystem.
func (s *SFTPFileSystem) Move(src, dest string) error {
	if err := s.rename(src, dest); err != nil {
		return ioError("move", src, err)
	}
	return nil
}

// Rename implements FileSystem.
func (s *SFTPFileSystem) Rename(oldPath, newName string) error {
	newPath, err := remotePaths.renameTarget(oldPath, newName)
	if err != nil {
		return err
	}

	if err := s.rename(oldPath, newPath); err != nil {
		return ioError("rename", oldPath, err)
	}
	return nil
}

// rename prefers posix-rename, which replaces an existing target like
// rename(2). Plain SFTP rename refuses to overwrite.
func (s *SFTPFileSystem) rename(oldPath, newPath string) error {
	if _, ok := s.Client.HasExtension(posixRenameExtension); ok {
		return s.Client.PosixRename(oldPath, newPath)
	}
	s.logger.Debug("server lacks posix-rename, using plain rename",
		zap.String("from", oldPath), zap.String("to", newPath))
	return s.Client.Rename(oldPath, newPath)
}
