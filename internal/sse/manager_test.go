package sse

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"email-agent/internal/logger"
)

func newTestManager() *Manager {
	return NewManager(logger.NewWithWriter(io.Discard))
}

func TestSubscribeAndBroadcast(t *testing.T) {
	m := newTestManager()

	ch := m.Subscribe()
	defer m.Unsubscribe(ch)
	assert.Equal(t, 1, m.ClientCount())

	m.Broadcast("categorize_progress", map[string]string{"email_id": "e1"})

	var event struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
		Time int64                  `json:"time"`
	}
	assert.NoError(t, json.Unmarshal(<-ch, &event))
	assert.Equal(t, "categorize_progress", event.Type)
	assert.Equal(t, "e1", event.Data["email_id"])
	assert.NotZero(t, event.Time)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	m := newTestManager()

	first := m.Subscribe()
	second := m.Subscribe()
	defer m.Unsubscribe(first)
	defer m.Unsubscribe(second)

	m.Broadcast("categorize_done", map[string]int{"count": 3})

	assert.NotEmpty(t, <-first)
	assert.NotEmpty(t, <-second)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m := newTestManager()

	ch := m.Subscribe()
	m.Unsubscribe(ch)
	assert.Equal(t, 0, m.ClientCount())

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is a no-op
	m.Unsubscribe(ch)
}

func TestBroadcastDropsEventsForSlowClient(t *testing.T) {
	m := newTestManager()

	ch := m.Subscribe()
	defer m.Unsubscribe(ch)

	// Overflow the buffer; Broadcast must not block
	for i := 0; i < 40; i++ {
		m.Broadcast("categorize_progress", i)
	}
	assert.Equal(t, 16, len(ch))
}

func TestCloseShutsDownClients(t *testing.T) {
	m := newTestManager()

	ch := m.Subscribe()
	m.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, m.ClientCount())

	// Subscribing after close yields an already-closed channel
	late := m.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
