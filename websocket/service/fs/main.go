package fs

import (
	"fmt"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"fileman/metrics"
)

const (
	BackendLocal = "local"
	BackendSFTP  = "sftp"
)

func NewService(backend string, fs FileSystem, logger *zap.Logger, m *metrics.Metrics) *FSService {
	return &FSService{
		FS:      fs,
		backend: backend,
		metrics: m,
		logger:  named(logger),
	}
}

func named(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named("fs")
}

func NewLocalService(logger *zap.Logger, m *metrics.Metrics) *FSService {
	return NewService(BackendLocal, NewLocalFileSystem(named(logger)), logger, m)
}

// NewSFTPService opens an SFTP session on an established SSH connection.
func NewSFTPService(sshClient *ssh.Client, logger *zap.Logger, m *metrics.Metrics) (*FSService, error) {
	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create sftp client: %w", err)
	}

	return NewService(BackendSFTP, NewSFTPFileSystem(sftpClient, named(logger)), logger, m), nil
}
