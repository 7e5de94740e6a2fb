package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"backend/entity"
	"backend/utils"
)

// a slow client may not stall the broadcast loop longer than this
const writeWait = 5 * time.Second

// conn is the part of *websocket.Conn the hub needs; tests register
// fakes through it.
type conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Session is one connected websocket tied to an authenticated user.
type Session struct {
	Conn   conn
	UserID uint
	Role   string
}

// Event is the payload pushed to observers on order lifecycle changes.
type Event struct {
	Type        string  `json:"type"`
	OrderID     uint    `json:"order_id"`
	UserID      uint    `json:"user_id"`
	TotalAmount float64 `json:"total_amount,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type delivery struct {
	event    string
	data     Event
	toAdmins bool
	toUser   uint // 0 = no per-user group
}

// Hub keeps the observer groups: every session joins its own user
// group, admin sessions additionally join the shared admin group.
// Delivery is best-effort; a disconnected observer just misses the
// event and catches up through the polling endpoints.
type Hub struct {
	users  map[uint]map[conn]bool
	admins map[conn]bool

	register   chan Session
	unregister chan Session
	broadcast  chan delivery

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[uint]map[conn]bool),
		admins:     make(map[conn]bool),
		register:   make(chan Session),
		unregister: make(chan Session),
		broadcast:  make(chan delivery),
	}
}

// Run processes joins, leaves and broadcasts. Start it once in its own
// goroutine before serving requests.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.users[sub.UserID] == nil {
				h.users[sub.UserID] = make(map[conn]bool)
			}
			h.users[sub.UserID][sub.Conn] = true
			if sub.Role == entity.RoleAdmin {
				h.admins[sub.Conn] = true
			}
			h.mu.Unlock()
			h.send(sub.Conn, envelope{Event: "connected", Data: gin.H{"message": "Connected"}})

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.Conn)
			h.mu.Unlock()

		case d := <-h.broadcast:
			msg := envelope{Event: d.event, Data: d.data}
			h.mu.Lock()
			if d.toAdmins {
				for c := range h.admins {
					if !h.send(c, msg) {
						h.drop(c)
					}
				}
			}
			if d.toUser != 0 {
				for c := range h.users[d.toUser] {
					if !h.send(c, msg) {
						h.drop(c)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) send(c conn, msg envelope) bool {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.WriteJSON(msg); err != nil {
		log.Printf("ws write error: %v", err)
		return false
	}
	return true
}

// drop removes the conn from every group it may be in. Caller holds mu.
func (h *Hub) drop(c conn) {
	delete(h.admins, c)
	for uid, set := range h.users {
		if set[c] {
			delete(set, c)
			if len(set) == 0 {
				delete(h.users, uid)
			}
		}
	}
	c.Close()
}

// ----- fire-and-forget notifications (services.OrderNotifier) -----

// NotifyNewOrder tells the admin group a new order arrived.
func (h *Hub) NotifyNewOrder(o *entity.Order) {
	h.broadcast <- delivery{
		event: "new_order",
		data: Event{
			Type:        "new_order",
			OrderID:     o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
		},
		toAdmins: true,
	}
}

// NotifyOrderStatus tells the admin group and the owning customer that
// an order changed status.
func (h *Hub) NotifyOrderStatus(o *entity.Order) {
	data := Event{
		Type:    "order_status_changed",
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
	}
	h.broadcast <- delivery{event: "order_updated", data: data, toAdmins: true}
	h.broadcast <- delivery{event: "order_status_changed", data: data, toUser: o.UserID}
}

// ----- HTTP upgrade -----

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws (behind WSAuthMiddleware)
func (h *Hub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Session{Conn: wsConn, UserID: userID, Role: role}
	h.register <- sub

	go h.listen(sub, wsConn)
}

// listen drains client frames until the connection dies, then leaves
// the groups. Clients never send application data on this channel.
func (h *Hub) listen(sub Session, wsConn *websocket.Conn) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			return
		}
	}
}
