package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/sse"
)

const (
	streamKeepalive = 30 * time.Second
	wsWriteWait     = 10 * time.Second
	wsPongWait      = 60 * time.Second
)

// StreamHandler defines the live dashboard stream handler interface
type StreamHandler interface {
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
	StreamWS(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	upgrader         websocket.Upgrader
	keepalive        time.Duration
}

// NewStreamHandler creates a stream handler. allowedOrigins limits WebSocket upgrades;
// an empty list or "*" accepts any origin.
func NewStreamHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service, allowedOrigins []string) StreamHandler {
	return &streamHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		keepalive: streamKeepalive,
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// wsMessage is the frame written to WebSocket clients
type wsMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// GetStreamToken generates a short-lived token for stream connections
func (h *streamHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	classCode, err := jwt.ClassCodeFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(classCode)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, dashboard.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// authenticate validates the token query parameter; EventSource and browser
// WebSocket clients cannot send custom headers
func (h *streamHandlerImpl) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return "", false
	}

	classCode, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.HandleError(w, err)
		return "", false
	}
	return classCode, true
}

// Stream handles the SSE connection for live dashboard snapshots
func (h *streamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	classCode, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.dashboardService.Subscribe(r.Context(), classCode)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"class_code\":%q}\n\n", classCode)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("failed to encode stream event", "class_code", classCode, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: %s\ndata: {\"timestamp\":%d}\n\n", sse.EventPing, time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// StreamWS handles the WebSocket connection for live dashboard snapshots
func (h *streamHandlerImpl) StreamWS(w http.ResponseWriter, r *http.Request) {
	classCode, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		slog.Warn("websocket upgrade failed", "class_code", classCode, "error", err)
		return
	}
	defer conn.Close()

	events, cleanup := h.dashboardService.Subscribe(r.Context(), classCode)
	defer cleanup()

	// The read loop only serves control frames; it ends when the client goes away
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msg wsMessage) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(msg)
	}

	if err := write(wsMessage{Event: "connected", Data: map[string]string{"status": "connected", "class_code": classCode}}); err != nil {
		return
	}

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
				return
			}
			if err := write(wsMessage{Event: event.Event, Data: event.Data}); err != nil {
				slog.Debug("websocket write failed", "class_code", classCode, "error", err)
				return
			}

		case <-keepalive.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}

		case <-closed:
			return

		case <-r.Context().Done():
			return
		}
	}
}
