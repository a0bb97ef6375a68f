package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/internal/render"
)

const wsIdleTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "compile", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "error", "pong"
	Payload interface{} `json:"payload,omitempty"` // Response-specific payload
}

// handleWebSocket upgrades the connection and compiles every "compile"
// message in arrival order. Each reply echoes the message type it answers.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("WebSocket upgrade failed", mdwlog.Fields{"error": err.Error()})
		return
	}
	defer conn.Close()

	logger := s.logger.WithField("remote", conn.RemoteAddr().String())
	logger.Debug("WebSocket connection established")

	conn.SetReadLimit(s.config.MaxRequestSize)
	conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read error", mdwlog.Fields{"error": err.Error()})
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		switch msg.Type {
		case "ping":
			s.send(conn, WSResponse{Type: "pong"})

		case "compile":
			var req CompileRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				s.sendError(conn, mdwerror.Wrap(err, "invalid compile payload").WithCode(mdwerror.CodeInvalidInput))
				continue
			}
			res, err := s.compile(r.Context(), "ws", req)
			if err != nil {
				s.sendError(conn, err)
				continue
			}
			s.send(conn, WSResponse{Type: "result", Payload: render.NewDocument(res, req.Tokens)})

		default:
			s.sendError(conn, mdwerror.Newf("unknown message type %q", msg.Type).WithCode(mdwerror.CodeInvalidInput))
		}
	}
}

func (s *Server) send(conn *websocket.Conn, resp WSResponse) {
	conn.SetWriteDeadline(time.Now().Add(s.writeTimeout()))
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Debug("WebSocket send error", mdwlog.Fields{"error": err.Error()})
	}
}

func (s *Server) sendError(conn *websocket.Conn, err error) {
	s.send(conn, WSResponse{Type: "error", Payload: newErrorBody(err)})
}

func (s *Server) writeTimeout() time.Duration {
	if s.config.WriteTimeout > 0 {
		return s.config.WriteTimeout
	}
	return DefaultConfig().WriteTimeout
}
