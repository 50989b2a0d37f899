package sse

import (
	"encoding/json"
	"sync"
	"time"

	"email-agent/internal/logger"
)

// Manager fans events out to Server-Sent Event subscribers. This service
// has no accounts, so there is a single subscriber pool rather than
// per-user channels.
type Manager struct {
	clients map[chan []byte]bool
	mu      sync.RWMutex
	closed  bool
	logger  *logger.Logger
}

func NewManager(logger *logger.Logger) *Manager {
	return &Manager{
		clients: make(map[chan []byte]bool),
		logger:  logger,
	}
}

// Subscribe registers a new client and returns its event channel.
func (m *Manager) Subscribe() chan []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	channel := make(chan []byte, 16)
	if m.closed {
		close(channel)
		return channel
	}
	m.clients[channel] = true
	m.logger.Info("Added SSE client, total clients:", len(m.clients))
	return channel
}

// Unsubscribe removes a client and closes its channel.
func (m *Manager) Unsubscribe(channel chan []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[channel]; !exists {
		return
	}
	delete(m.clients, channel)
	close(channel)
	m.logger.Info("Removed SSE client, remaining clients:", len(m.clients))
}

// Broadcast sends an event to every subscriber. Slow clients with a full
// buffer drop the event rather than block the sender.
func (m *Manager) Broadcast(eventType string, data interface{}) {
	event := map[string]interface{}{
		"type": eventType,
		"data": data,
		"time": time.Now().Unix(),
	}
	jsonData, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("Failed to marshal SSE event:", err)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for channel := range m.clients {
		select {
		case channel <- jsonData:
		default:
			m.logger.Warn("Dropped SSE event for slow client, type:", eventType)
		}
	}
}

// Close shuts down the manager and every client channel.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	for channel := range m.clients {
		close(channel)
		delete(m.clients, channel)
	}
}

// ClientCount returns the number of active subscribers.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
