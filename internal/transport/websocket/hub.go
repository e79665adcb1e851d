// Package websocket рассылает подключенным клиентам события об изменении записей,
// чтобы списки свободных слотов обновлялись без перезагрузки.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"slotbook/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client представляет одно подключение. Пустой SpecialistID означает подписку на все события.
type Client struct {
	SpecialistID string
	Conn         *websocket.Conn
	Send         chan []byte
	Hub          *AppointmentHub
}

type outbound struct {
	specialistIDs map[string]bool
	payload       []byte
}

// AppointmentHub хранит активные подключения и рассылает им события.
type AppointmentHub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	mutex      sync.RWMutex
}

func NewAppointmentHub(logger *zap.Logger, allowedOrigins []string) *AppointmentHub {
	return &AppointmentHub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Run обслуживает регистрацию клиентов и рассылку до отмены ctx.
func (h *AppointmentHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Debug("клиент подключен к ленте записей", zap.String("specialistId", client.SpecialistID))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if client.SpecialistID != "" && !msg.specialistIDs[client.SpecialistID] {
					continue
				}
				select {
				case client.Send <- msg.payload:
				default:
					// Клиент не успевает читать: отключаем его, чтобы не тормозить остальных.
					delete(h.clients, client)
					close(client.Send)
					h.logger.Warn("медленный клиент отключен от ленты записей")
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish ставит событие в очередь рассылки и никогда не блокирует вызывающего.
func (h *AppointmentHub) Publish(event domain.AppointmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ошибка сериализации события", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	msg := outbound{specialistIDs: make(map[string]bool), payload: payload}
	if event.Appointment != nil {
		msg.specialistIDs[event.Appointment.SpecialistID] = true
	}
	for _, a := range event.Appointments {
		msg.specialistIDs[a.SpecialistID] = true
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("очередь событий переполнена, событие пропущено", zap.String("type", string(event.Type)))
	}
}

func (h *AppointmentHub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket подключает клиента к ленте. Параметр specialistId
// ограничивает ленту записями одного специалиста.
func (h *AppointmentHub) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("не удалось установить websocket-соединение", zap.Error(err))
		return
	}

	client := &Client{
		SpecialistID: c.Query("specialistId"),
		Conn:         conn,
		Send:         make(chan []byte, sendBuffer),
		Hub:          h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump только поддерживает соединение: входящие сообщения лента не принимает.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка websocket", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
