// Package server tracks the live game sessions of one process so that they
// can be told about a shutdown and share a leaderboard.
package server

import (
	"slices"
	"sync"
	"time"
)

// LeaderboardSize is how many entries the leaderboard keeps.
const LeaderboardSize = 5

// Registry is the interface clients use to talk to the hub.
type Registry interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	RecordWin(entry WinEntry)
	Leaderboard() []WinEntry
	Count() int
}

// Hub is the registry of connected sessions. It is safe for concurrent use.
type Hub struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	wins         []WinEntry // Fastest first, at most LeaderboardSize
}

// Compile-time check that Hub implements Registry.
var _ Registry = (*Hub)(nil)

// ClientHandle represents a session's registration with the hub.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the session
}

// ClientEvent represents an event sent from the hub to a session.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// WinEntry is a finished, won game.
type WinEntry struct {
	Username   string
	Difficulty string
	Duration   time.Duration // Simulated time from start to the last kill
	Shots      int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
	}
}

// RegisterClient registers a new session with the given username and returns its handle.
func (h *Hub) RegisterClient(username string) *ClientHandle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &ClientHandle{
		ID:       h.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	h.nextClientID++
	h.clients[handle.ID] = handle
	return handle
}

// UnregisterClient removes a session. Unknown IDs are ignored.
func (h *Hub) UnregisterClient(clientID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientID)
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RecordWin adds a win to the leaderboard if it is among the fastest.
// Harder difficulties rank first, then shorter duration, then fewer shots.
func (h *Hub) RecordWin(entry WinEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.wins = append(h.wins, entry)
	slices.SortStableFunc(h.wins, compareWins)
	if len(h.wins) > LeaderboardSize {
		h.wins = h.wins[:LeaderboardSize]
	}
}

// Leaderboard returns a copy of the current leaderboard.
func (h *Hub) Leaderboard() []WinEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.wins)
}

// difficultyRank orders known difficulty IDs, hardest first.
var difficultyRank = map[string]int{"hard": 0, "medium": 1, "normal": 2}

func compareWins(a, b WinEntry) int {
	ra, oka := difficultyRank[a.Difficulty]
	rb, okb := difficultyRank[b.Difficulty]
	if !oka {
		ra = len(difficultyRank)
	}
	if !okb {
		rb = len(difficultyRank)
	}
	if ra != rb {
		return ra - rb
	}
	if a.Duration != b.Duration {
		if a.Duration < b.Duration {
			return -1
		}
		return 1
	}
	return a.Shots - b.Shots
}

// Shutdown notifies every session about the shutdown and waits until all of
// them have unregistered or the timeout elapses.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for h.Count() > 0 {
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
