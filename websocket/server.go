package websocket

import (
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const maxTimeoutCheck = 10 * time.Second

type Server struct {
	*Conn
	services map[string]Service

	// unix nanoseconds of the last message for an active service
	lastActiveTime atomic.Int64
	activeServices []string
	timeout        time.Duration

	logger *zap.Logger
}

func NewServer(w http.ResponseWriter, r *http.Request, timeout time.Duration, logger *zap.Logger) (*Server, error) {
	logger = logger.Named("websocket")

	conn, err := NewConn(w, r, logger)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Conn:     conn,
		services: make(map[string]Service),
		timeout:  timeout,
		logger:   logger,
	}
	server.touch()

	return server, nil
}

func (s *Server) touch() {
	s.lastActiveTime.Store(time.Now().UnixNano())
}

func (s *Server) idle() time.Duration {
	return time.Since(time.Unix(0, s.lastActiveTime.Load()))
}

func (s *Server) checkTimeout(done <-chan struct{}) {
	if s.timeout <= 0 {
		return
	}
	interval := min(s.timeout/2, maxTimeoutCheck)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if s.idle() > s.timeout {
				s.logger.Info("closing idle connection", zap.Duration("timeout", s.timeout))
				s.Close()
				return
			}
		}
	}
}

// Register adds a service whose traffic keeps the connection alive.
func (s *Server) Register(service Service) {
	s.RegisterPassive(service)
	s.activeServices = append(s.activeServices, service.Name())
}

// RegisterPassive adds a service whose traffic does not count as activity.
func (s *Server) RegisterPassive(service Service) {
	if _, exists := s.services[service.Name()]; exists {
		s.logger.Warn("service already registered", zap.String("service", service.Name()))
		return
	}

	service.Register(s.Conn)
	s.services[service.Name()] = service
}

// Start serves the connection until it fails or times out, then cleans up
// every registered service.
func (s *Server) Start() {
	done := make(chan struct{})
	dispatched := make(chan struct{})

	go s.checkTimeout(done)
	go func() {
		defer close(dispatched)
		for msg := range s.TextMessage {
			s.dispatch(msg)
		}
	}()

	err := s.StartDispatch()
	close(done)
	<-dispatched

	s.logger.Debug("connection closed", zap.Error(err))
	for _, service := range s.services {
		service.Cleanup(err)
	}
	s.Close()
}

func (s *Server) dispatch(msg *ServiceMessage) {
	if slices.Contains(s.activeServices, msg.Service) {
		s.touch()
	}

	service, exists := s.services[msg.Service]
	if !exists {
		s.logger.Debug("message for unknown service", zap.String("service", msg.Service))
		s.WriteJSON(&ServiceMessage{
			Service: msg.Service,
			Id:      msg.Id,
			Action:  msg.Action,
			Error:   "unknown service: " + msg.Service,
		})
		return
	}
	service.HandleTextMessage(msg.Id, msg.Action, msg.Data)
}
