package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Envelope é o formato enviado aos clientes
type Envelope struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan Envelope
}

// Hub mantém as conexões websocket agrupadas por tópico (room:<id>, user:<id>)
type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[*client]bool
	upgrader websocket.Upgrader
	log      ports.Logger
}

// NewHub cria um hub; allowedOrigins vazio aceita qualquer origem
func NewHub(allowedOrigins []string, log ports.Logger) *Hub {
	h := &Hub{
		topics: make(map[string]map[*client]bool),
		log:    log,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

var _ ports.Broadcaster = (*Hub)(nil)

// Broadcast enfileira o payload para os clientes do tópico; clientes lentos são descartados.
// O envio acontece sob RLock para que unregister não feche um canal em uso.
func (h *Hub) Broadcast(topic string, payload any) {
	var slow []*client

	h.mu.RLock()
	for c := range h.topics[topic] {
		select {
		case c.send <- Envelope{Topic: topic, Payload: payload}:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow websocket client", "topic", topic)
		h.unregister(c)
	}
}

// Subscribers retorna quantos clientes estão inscritos no tópico
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Serve faz o upgrade da conexão e a inscreve nos tópicos até o cliente desconectar
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topics ...string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan Envelope, sendBuffer)}
	h.register(c, topics)

	go h.writeLoop(c)
	h.readLoop(c)
	return nil
}

func (h *Hub) register(c *client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		if h.topics[topic] == nil {
			h.topics[topic] = make(map[*client]bool)
		}
		h.topics[topic][c] = true
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for topic, clients := range h.topics {
		if clients[c] {
			delete(clients, c)
			removed = true
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if removed {
		close(c.send)
	}
}

// readLoop só processa controle (pong/close); mensagens de chat chegam pela API REST
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket closed", "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				h.log.Debug("websocket write failed", "topic", msg.Topic, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
