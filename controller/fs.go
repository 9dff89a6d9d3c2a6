package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileman/websocket"
	"fileman/websocket/service/fs"
)

func (ctl *Controller) StartLocal(c *gin.Context) {
	wsServer, err := websocket.NewServer(c.Writer, c.Request, ctl.cfg.Server.ConnectionTimeout, ctl.logger)
	if err != nil {
		// the upgrader has already answered
		return
	}

	ctl.serve(wsServer, fs.NewLocalService(ctl.logger, ctl.metrics))
}

func (ctl *Controller) StartSSH(c *gin.Context) {
	sshClient, ok := ctl.ssh.client(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Invalid SSH client ID"})
		return
	}

	fsService, err := fs.NewSFTPService(sshClient, ctl.logger, ctl.metrics)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	wsServer, err := websocket.NewServer(c.Writer, c.Request, ctl.cfg.Server.ConnectionTimeout, ctl.logger)
	if err != nil {
		fsService.Cleanup(err)
		return
	}

	ctl.serve(wsServer, fsService)
}

// Invoke runs one fs action over plain HTTP against the local backend.
func (ctl *Controller) Invoke(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := ctl.local.Invoke(c.Param("action"), body)
	if err != nil {
		kind := fs.KindOf(err)
		c.JSON(statusFor(err, kind), errorResponse{Error: err.Error(), Kind: kind.String()})
		return
	}

	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}

func statusFor(err error, kind fs.Kind) int {
	switch {
	case errors.Is(err, fs.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, fs.ErrBadRequest):
		return http.StatusBadRequest
	}

	switch kind {
	case fs.KindNotFound:
		return http.StatusNotFound
	case fs.KindNotADirectory, fs.KindInvalidPath:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
