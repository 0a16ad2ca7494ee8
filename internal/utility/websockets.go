package utility

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Simple Hub to hold active chat connections: Map[ConnectionID] -> Connection
var (
	Clients   = make(map[string]*websocket.Conn)
	ClientsMu sync.Mutex
	Upgrader  = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Allow CORS for development
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

// RegisterClient records a new chat connection.
func RegisterClient(id string, conn *websocket.Conn) {
	ClientsMu.Lock()
	defer ClientsMu.Unlock()
	Clients[id] = conn
	log.Info().Str("conn_id", id).Msg("WebSocket Client Connected")
}

// UnregisterClient forgets a connection (when the tab is closed).
func UnregisterClient(id string) {
	ClientsMu.Lock()
	defer ClientsMu.Unlock()
	if _, ok := Clients[id]; ok {
		delete(Clients, id)
		log.Info().Str("conn_id", id).Msg("WebSocket Client Disconnected")
	}
}

// ClientCount returns the number of open chat connections.
func ClientCount() int {
	ClientsMu.Lock()
	defer ClientsMu.Unlock()
	return len(Clients)
}

// CloseAllClients sends a going-away close frame to every connection. The
// HTTP server does not track hijacked connections, so shutdown calls this.
func CloseAllClients() {
	ClientsMu.Lock()
	defer ClientsMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	for id, conn := range Clients {
		if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			log.Warn().Err(err).Str("conn_id", id).Msg("Failed to send close frame")
		}
		conn.Close()
		delete(Clients, id)
	}
}
