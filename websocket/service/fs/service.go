package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fileman/metrics"
	ws "fileman/websocket"
)

const (
	actionList            = "list"
	actionCreateDirectory = "create_directory"
	actionDelete          = "delete"
	actionCopy            = "copy"
	actionMove            = "move"
	actionRename          = "rename"
)

var (
	ErrBadRequest    = errors.New("malformed request")
	ErrUnknownAction = errors.New("unknown action")
)

type pathData struct {
	Path string `json:"path"`
}
type deleteData struct {
	Path string `json:"path"`
	DeleteOptions
}
type transferData struct {
	SourcePath string `json:"sourcePath"`
	DestPath   string `json:"destPath"`
}
type renameData struct {
	Path    string `json:"path"`
	NewName string `json:"newName"`
}

type FSService struct {
	conn ws.MessageWriter

	FS      FileSystem
	backend string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Register implements websocket.Service.
func (s *FSService) Register(conn ws.MessageWriter) {
	s.conn = conn
}

func (s *FSService) Name() string {
	return "fs"
}

func (s *FSService) HandleTextMessage(id, action string, data json.RawMessage) {
	go s.handle(id, action, data)
}

// Cleanup closes the backend if it holds a session.
func (s *FSService) Cleanup(err error) {
	if c, ok := s.FS.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			s.logger.Warn("error closing filesystem", zap.Error(err))
		}
	}
}

// Invoke runs one action against the backend. The result is nil for
// actions that only report success.
func (s *FSService) Invoke(action string, data json.RawMessage) (result any, err error) {
	start := time.Now()
	defer func() {
		if !errors.Is(err, ErrUnknownAction) {
			s.metrics.Observe(s.backend, action, start, err)
		}
	}()

	switch action {
	case actionList:
		var d pathData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		listing, err := s.FS.List(d.Path)
		if err != nil {
			return nil, err
		}
		return listing, nil
	case actionCreateDirectory:
		var d pathData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		return nil, s.FS.CreateDirectory(d.Path)
	case actionDelete:
		var d deleteData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		return nil, s.FS.Delete(d.Path, d.DeleteOptions)
	case actionCopy:
		var d transferData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		return nil, s.FS.Copy(d.SourcePath, d.DestPath)
	case actionMove:
		var d transferData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		return nil, s.FS.Move(d.SourcePath, d.DestPath)
	case actionRename:
		var d renameData
		if err := decode(data, &d); err != nil {
			return nil, err
		}
		return nil, s.FS.Rename(d.Path, d.NewName)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func decode(data json.RawMessage, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (s *FSService) handle(id, action string, data json.RawMessage) {
	result, err := s.Invoke(action, data)
	if err != nil {
		s.handleError(id, action, err)
		return
	}

	msg := &ws.ServiceMessage{
		Service: s.Name(),
		Id:      id,
		Action:  action,
	}
	if result != nil {
		r, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("error marshalling response", zap.String("action", action), zap.Error(err))
			return
		}
		msg.Data = r
	}

	s.conn.WriteJSON(msg)
}

func (s *FSService) handleError(id, action string, err error) {
	kind := KindOf(err)
	s.logger.Warn("fs request failed",
		zap.String("id", id),
		zap.String("action", action),
		zap.String("kind", kind.String()),
		zap.Error(err))

	s.conn.WriteJSON(&ws.ServiceMessage{
		Service: s.Name(),
		Id:      id,
		Action:  action,
		Error:   err.Error(),
		Kind:    kind.String(),
	})
}
