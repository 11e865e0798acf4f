package ws

import "sync"

// Manager keeps the broadcast groups: which live connections belong to which
// room code. It also tracks the reverse mapping so a disconnecting client can
// be removed from every group it joined.
type Manager struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Client]struct{} // roomID -> clients
	membership map[*Client]map[string]struct{} // client -> roomIDs
}

func NewManager() *Manager {
	return &Manager{
		rooms:      make(map[string]map[*Client]struct{}),
		membership: make(map[*Client]map[string]struct{}),
	}
}

// Join adds a client to the broadcast group for roomID.
func (m *Manager) Join(roomID string, c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[*Client]struct{})
	}
	m.rooms[roomID][c] = struct{}{}
	if m.membership[c] == nil {
		m.membership[c] = make(map[string]struct{})
	}
	m.membership[c][roomID] = struct{}{}
}

// Remove takes a client out of every group it joined. Called on disconnect.
func (m *Manager) Remove(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for roomID := range m.membership[c] {
		delete(m.rooms[roomID], c)
		if len(m.rooms[roomID]) == 0 {
			delete(m.rooms, roomID)
		}
	}
	delete(m.membership, c)
}

// Broadcast sends a text frame to every client in the room's group.
func (m *Manager) Broadcast(roomID, text string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for c := range m.rooms[roomID] {
		c.Send(text)
	}
}

// BroadcastExcept sends a text frame to every client in the group but the
// given one. Used for join announcements.
func (m *Manager) BroadcastExcept(roomID string, except *Client, text string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for c := range m.rooms[roomID] {
		if c == except {
			continue
		}
		c.Send(text)
	}
}

// Count returns the number of live connections in the room's group.
func (m *Manager) Count(roomID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[roomID])
}
