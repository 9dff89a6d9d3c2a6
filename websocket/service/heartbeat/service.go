package heartbeat

import (
	"encoding/json"
	"time"

	ws "fileman/websocket"
)

type pongData struct {
	ServerTime int64 `json:"serverTime"`
}

// HeartbeatService echoes pings so the front-end can tell the bridge is
// alive. It is registered passively and never keeps an idle connection open.
type HeartbeatService struct {
	conn ws.MessageWriter
	now  func() time.Time
}

func (s *HeartbeatService) Name() string {
	return "heartbeat"
}

func (s *HeartbeatService) Register(conn ws.MessageWriter) {
	s.conn = conn
}

func (s *HeartbeatService) HandleTextMessage(id, action string, data json.RawMessage) {
	d, _ := json.Marshal(pongData{ServerTime: s.now().UnixMilli()})
	s.conn.WriteJSON(&ws.ServiceMessage{Service: s.Name(), Action: action, Id: id, Data: d})
}

func (s *HeartbeatService) Cleanup(err error) {}

func NewService() ws.Service {
	return &HeartbeatService{now: time.Now}
}
