package server

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/localfixhq/localfix/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans freshly accepted reports out to every connected feed client. A
// slow client is dropped rather than allowed to stall the broadcast.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan models.Report
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan models.Report, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
		case report := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(report); err != nil {
					log.WithError(err).Warn("dropping slow feed client")
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Publish queues a report for broadcast without blocking the submitter.
func (h *Hub) Publish(report models.Report) {
	select {
	case h.broadcast <- report:
	default:
		log.Warn("feed broadcast queue full, dropping event")
	}
}

func (s *Server) handleReportFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithError(err).Error("websocket upgrade failed")
			return
		}

		s.Feed.register <- conn

		// Drain client frames so pings are answered; the feed is one way.
		go func() {
			defer func() { s.Feed.unregister <- conn }()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
