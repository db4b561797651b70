package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// User is one planner client streaming evaluate requests over a websocket.
type User struct {
	io   sync.Mutex
	conn net.Conn

	id  uint
	hub *Hub
}

// Serve answers every text frame with one envelope until the connection is closed.
func (u *User) Serve(ctx context.Context) error {
	for {
		msg, op, err := wsutil.ReadClientData(u.conn)
		if err != nil {
			return err
		}
		if op != ws.OpText {
			continue
		}
		if err := u.evaluate(ctx, msg); err != nil {
			return err
		}
	}
}

func (u *User) evaluate(ctx context.Context, msg []byte) error {
	var request evaluateTrajectoriesRequest
	if err := json.Unmarshal(msg, &request); err != nil {
		return u.write(errorEnvelope(http.StatusBadRequest, err.Error()))
	}

	resp, err := evaluate(ctx, u.hub.plannerService, u.hub.observer, request)
	if err != nil {
		status := statusCode(err)
		return u.write(errorEnvelope(status, errorMessage(err, status)))
	}
	return u.write(envelope{"data": resp})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	ns             map[uint]*User
	plannerService PlannerService
	observer       EvaluationObserver
}

func NewHub(plannerService PlannerService, observer EvaluationObserver) *Hub {
	return &Hub{
		ns:             make(map[uint]*User),
		plannerService: plannerService,
		observer:       observer,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

// Remove closes the user connection and forgets it.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	user.conn.Close()
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, user := range h.ns {
		user.conn.Close()
		delete(h.ns, id)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ns)
}
