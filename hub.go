package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"second-earth/server/world"
)

const (
	writeWait     = 10 * time.Second
	minimapWidth  = 5
	minimapHeight = 5
)

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub owns the live world and the subscribers watching it. Regeneration and
// cell mutations run under the hub lock, so subscribers always see a complete
// grid.
type Hub struct {
	mu          sync.Mutex
	world       *world.World
	minimap     *world.MiniGrid
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
	rebuild     func(seed string) (*world.World, error)
}

func newHub(w *world.World, rebuild func(seed string) (*world.World, error)) *Hub {
	return &Hub{
		world:       w,
		minimap:     world.NewMiniGrid(w.Grid(), minimapWidth, minimapHeight),
		subscribers: make(map[uint64]*subscriber),
		rebuild:     rebuild,
	}
}

func (h *Hub) worldSnapshot() worldMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.worldSnapshotLocked()
}

func (h *Hub) worldSnapshotLocked() worldMessage {
	return worldMessage{
		Type:       "world",
		Seed:       h.world.Seed(),
		Grid:       h.world.SaveRecord(),
		ServerTime: time.Now().UnixMilli(),
	}
}

func (h *Hub) minimapSnapshotLocked() minimapMessage {
	centerX, centerY := h.minimap.Center()
	msg := minimapMessage{
		Type:    "minimap",
		CenterX: centerX,
		CenterY: centerY,
		Width:   h.minimap.Width(),
		Height:  h.minimap.Height(),
	}
	for y := 0; y < h.minimap.Height(); y++ {
		for x := 0; x < h.minimap.Width(); x++ {
			if view, ok := h.minimap.CellAt(x, y); ok {
				msg.Cells = append(msg.Cells, view)
			}
		}
	}
	return msg
}

// Regenerate swaps in a freshly generated world under the given seed and
// broadcasts the result.
func (h *Hub) Regenerate(ctx context.Context, seed string) error {
	replacement, err := h.rebuild(seed)
	if err != nil {
		return err
	}
	if err := replacement.Generate(ctx); err != nil {
		return err
	}

	h.mu.Lock()
	h.world = replacement
	h.minimap = world.NewMiniGrid(replacement.Grid(), minimapWidth, minimapHeight)
	msg := h.worldSnapshotLocked()
	h.mu.Unlock()

	h.broadcast(msg)
	return nil
}

// Recenter moves the minimap window and returns the refreshed view.
func (h *Hub) Recenter(x, y int) minimapMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.minimap.Calibrate(x, y)
	return h.minimapSnapshotLocked()
}

// Explore marks a cell explored and reports whether the coordinates resolved.
func (h *Hub) Explore(x, y int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	cell := h.world.Grid().FindCell(x, y)
	if cell == nil {
		return false
	}
	cell.SetExplored(true)
	return true
}

// LoadRecord restores a saved grid and broadcasts the result.
func (h *Hub) LoadRecord(ctx context.Context, record world.GridRecord) error {
	h.mu.Lock()
	err := h.world.Load(ctx, record)
	if err == nil {
		h.minimap = world.NewMiniGrid(h.world.Grid(), minimapWidth, minimapHeight)
	}
	var msg worldMessage
	if err == nil {
		msg = h.worldSnapshotLocked()
	}
	h.mu.Unlock()

	if err != nil {
		return err
	}
	h.broadcast(msg)
	return nil
}

// SaveRecord returns the serialized current grid.
func (h *Hub) SaveRecord() world.GridRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.SaveRecord()
}

// Subscribe registers a connection and sends it the current world snapshot.
func (h *Hub) Subscribe(conn *websocket.Conn) (uint64, *subscriber, error) {
	id := h.nextID.Add(1)
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[id] = sub
	msg := h.worldSnapshotLocked()
	h.mu.Unlock()

	if err := sub.send(msg); err != nil {
		h.Disconnect(id)
		return 0, nil, err
	}
	return id, sub, nil
}

// Disconnect drops a subscriber and closes its connection.
func (h *Hub) Disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal broadcast: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.sendRaw(data); err != nil {
			log.Printf("failed to send update to subscriber %d: %v", id, err)
			h.Disconnect(id)
		}
	}
}

func (s *subscriber) send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.sendRaw(data)
}

func (s *subscriber) sendRaw(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop consumes client commands until the connection drops.
func (h *Hub) readLoop(ctx context.Context, id uint64, sub *subscriber) {
	defer h.Disconnect(id)
	for {
		_, payload, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Printf("discarding malformed message from subscriber %d: %v", id, err)
			continue
		}

		switch msg.Type {
		case "regenerate":
			if err := h.Regenerate(ctx, msg.Seed); err != nil {
				h.sendError(id, sub, "regenerate failed: "+err.Error())
			}
		case "recenter":
			if err := sub.send(h.Recenter(msg.X, msg.Y)); err != nil {
				return
			}
		case "explore":
			if !h.Explore(msg.X, msg.Y) {
				h.sendError(id, sub, "cell out of range")
			}
		default:
			log.Printf("unknown message type %q from subscriber %d", msg.Type, id)
		}
	}
}

func (h *Hub) sendError(id uint64, sub *subscriber, reason string) {
	if err := sub.send(errorMessage{Type: "error", Reason: reason}); err != nil {
		h.Disconnect(id)
	}
}
