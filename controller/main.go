package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fileman/config"
	"fileman/metrics"
	"fileman/websocket"
	"fileman/websocket/service/fs"
	"fileman/websocket/service/heartbeat"
)

type Controller struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	// serves one-shot HTTP invocations
	local *fs.FSService
	ssh   *SSHController
}

func New(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *Controller {
	return &Controller{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		local:   fs.NewLocalService(logger, m),
		ssh:     NewSSHController(cfg.SSH, logger.Named("ssh")),
	}
}

func SetupRoutes(r *gin.Engine, ctl *Controller) {
	r.Use(RequestLogger(ctl.logger.Named("http")), CORS(ctl.cfg.Server.AllowOrigins))

	files := r.Group("/fs")
	{
		files.GET("/local", ctl.StartLocal)

		files.POST("/ssh", ctl.ssh.LoginSSH)
		files.GET("/ssh/:id", ctl.StartSSH)
		files.DELETE("/ssh/:id", ctl.ssh.LogoutSSH)
	}

	r.POST("/invoke/:action", ctl.Invoke)
	r.GET("/metrics", gin.WrapH(ctl.metrics.Handler()))
}

// serve runs the bridge until the connection ends.
func (ctl *Controller) serve(wsServer *websocket.Server, fsService *fs.FSService) {
	wsServer.Register(fsService)
	wsServer.RegisterPassive(heartbeat.NewService())

	ctl.metrics.Connections.Inc()
	defer ctl.metrics.Connections.Dec()

	wsServer.Start()
}
