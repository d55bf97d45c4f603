package room

import (
	"crypto/rand"
	"math/big"
	"sort"
	"sync"

	"pong/game"
)

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	Code     string `json:"code"`
	Viewers  int    `json:"viewers"`
	Score1   int    `json:"score1"`
	Score2   int    `json:"score2"`
	GameOver bool   `json:"gameOver"`
}

// Manager holds one independent game per room code. Rooms are created on
// first join or via CreateRoom, and removed when the last viewer leaves.
type Manager struct {
	mu    sync.RWMutex
	rules game.Rules
	rooms map[string]*Room
}

func NewManager(rules game.Rules) *Manager {
	return &Manager{
		rules: rules,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreateRoom returns the room for the given code, creating it if needed.
func (m *Manager) GetOrCreateRoom(code string) *Room {
	if code == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		return r
	}
	return m.startRoom(code)
}

// Get returns an existing room.
func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateRoom generates a unique 6-char code, creates the room, and returns it.
func (m *Manager) CreateRoom() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := m.rooms[code]; exists {
			continue
		}
		return m.startRoom(code)
	}
}

// startRoom must be called with m.mu held.
func (m *Manager) startRoom(code string) *Room {
	r := New(m.rules)
	r.Code = code
	r.OnEmpty = func(c string) {
		m.removeRoom(c)
	}
	m.rooms[code] = r
	go r.Run()
	return r
}

func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		r.Stop()
		delete(m.rooms, code)
	}
}

// ListRooms returns all active rooms sorted by code.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		f := r.LastFrame()
		out = append(out, RoomInfo{
			Code:     code,
			Viewers:  r.NumViewers(),
			Score1:   f.Score1,
			Score2:   f.Score2,
			GameOver: f.GameOver,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// StopAll stops every room, used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, r := range m.rooms {
		r.Stop()
		delete(m.rooms, code)
	}
}

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
