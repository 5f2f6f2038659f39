package bridge

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Server is the receiving end of the bridge.
type Server struct {
	handler  Handler
	upgrader websocket.Upgrader
	log      *zap.Logger

	// Requests are handled one at a time, like events on a page's main thread.
	mu sync.Mutex
}

// NewServer creates a Server that passes requests to h.
func NewServer(h Handler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		handler: h,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Only non-browser clients; a web page must not drive the agent.
			CheckOrigin: func(r *http.Request) bool {
				return r.Header.Get("Origin") == ""
			},
		},
	}
}

// ServeHTTP upgrades the connection and answers each request with one reply.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("bridge connection closed", zap.Error(err))
			}
			return
		}

		reply := s.dispatch(r, data)

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Warn("writing reply failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) dispatch(r *http.Request, data []byte) Reply {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.log.Debug("undecodable bridge message", zap.Error(err))
		return Reply{Success: false, Error: CodeBadRequest}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.handler.HandleMessage(r.Context(), req)
	reply.ID = req.ID
	s.log.Debug("bridge message handled",
		zap.String("id", req.ID),
		zap.String("action", req.Action),
		zap.Bool("success", reply.Success),
		zap.String("error", reply.Error),
	)
	return reply
}
