package controller

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"fileman/config"
)

type dialFunc func(network, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error)

// SSHController keeps the SSH connections opened by LoginSSH. Each bridge
// connection for a login gets its own SFTP session on top.
type SSHController struct {
	Clients map[string]*ssh.Client
	*sync.RWMutex

	cfg    config.SSHConfig
	dial   dialFunc
	logger *zap.Logger
}

func NewSSHController(cfg config.SSHConfig, logger *zap.Logger) *SSHController {
	return &SSHController{
		Clients: make(map[string]*ssh.Client),
		RWMutex: &sync.RWMutex{},
		cfg:     cfg,
		dial:    ssh.Dial,
		logger:  logger,
	}
}

func (sc *SSHController) client(id string) (*ssh.Client, bool) {
	sc.RLock()
	defer sc.RUnlock()
	client, ok := sc.Clients[id]
	return client, ok
}

func (sc *SSHController) clientConfig(info *sshInfo) (*ssh.ClientConfig, error) {
	sshConfig := &ssh.ClientConfig{
		User:            info.Username,
		Timeout:         sc.cfg.DialTimeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	if sc.cfg.KnownHostsFile != "" {
		callback, err := knownhosts.New(sc.cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts: %w", err)
		}
		sshConfig.HostKeyCallback = callback
	}

	if info.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(info.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		sshConfig.Auth = append(sshConfig.Auth, ssh.PublicKeys(signer))
	}
	if info.Password != "" {
		sshConfig.Auth = append(sshConfig.Auth, ssh.Password(info.Password))
	}
	if len(sshConfig.Auth) == 0 {
		return nil, fmt.Errorf("no authentication method provided")
	}

	return sshConfig, nil
}

func (sc *SSHController) LoginSSH(c *gin.Context) {
	var info sshInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if info.Port == 0 {
		info.Port = 22
	}

	sshConfig, err := sc.clientConfig(&info)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	addr := net.JoinHostPort(info.Host, strconv.Itoa(info.Port))
	client, err := sc.dial("tcp", addr, sshConfig)
	if err != nil {
		sc.logger.Warn("ssh dial failed", zap.String("addr", addr), zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	id := uuid.NewString()
	sc.Lock()
	sc.Clients[id] = client
	sc.Unlock()

	sc.logger.Info("ssh login", zap.String("id", id), zap.String("addr", addr), zap.String("user", info.Username))
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (sc *SSHController) LogoutSSH(c *gin.Context) {
	id := c.Param("id")

	sc.Lock()
	client, exists := sc.Clients[id]
	delete(sc.Clients, id)
	sc.Unlock()

	if !exists {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Invalid SSH client ID"})
		return
	}

	if err := client.Close(); err != nil {
		sc.logger.Debug("error closing ssh client", zap.String("id", id), zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
