package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pawBack/internal/store"
)

const (
	readLimit     = 1 << 20 // 1 MB
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

// changeFeedHub fans store change events out to connected clients. A client
// that receives an event re-fetches whatever collection it cares about, so
// the feed only carries the collection name and the store version.
type changeFeedHub struct {
	store   *store.Store
	infoLog *log.Logger

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	clients    map[*websocket.Conn]struct{}
}

func newChangeFeedHub(st *store.Store, infoLog *log.Logger) *changeFeedHub {
	return &changeFeedHub{
		store:      st,
		infoLog:    infoLog,
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]struct{}),
	}
}

// Все операции с clients — только здесь.
func (hub *changeFeedHub) run() {
	events, cancel := hub.store.Subscribe()
	defer cancel()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case conn := <-hub.register:
			hub.clients[conn] = struct{}{}
			hub.infoLog.Printf("WS register, clients=%d", len(hub.clients))

		case conn := <-hub.unregister:
			if _, ok := hub.clients[conn]; ok {
				conn.Close()
				delete(hub.clients, conn)
				hub.infoLog.Printf("WS unregister, clients=%d", len(hub.clients))
			}

		case ev := <-events:
			for conn := range hub.clients {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(ev); err != nil {
					conn.Close()
					delete(hub.clients, conn)
				}
			}

		case <-ping.C:
			for conn := range hub.clients {
				conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					conn.Close()
					delete(hub.clients, conn)
				}
			}
		}
	}
}

func (app *application) ChangeFeedHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("WebSocket upgrade error: %v", err)
		return
	}

	app.feed.register <- conn
	go app.feed.drain(conn)
}

// drain keeps the read side alive for pongs and close frames; the feed is
// write-only from the client's point of view.
func (hub *changeFeedHub) drain(conn *websocket.Conn) {
	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.unregister <- conn
			return
		}
	}
}
