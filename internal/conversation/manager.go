// internal/conversation/manager.go
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/metrics"
)

type session struct {
	log      *Log
	lastSeen time.Time
}

// Manager owns the per-session conversation logs. Sessions are identified
// by server-issued UUIDs and reaped after sitting idle longer than the
// configured TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
	logger   logger.Logger
}

func NewManager(idleTTL time.Duration, log logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "session-manager"}),
	}
}

// Acquire returns the log for the given session ID, creating a fresh session
// when the ID is empty or unknown. The returned ID is what the caller should
// hand back to the client.
func (m *Manager) Acquire(id string) (string, *Log) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.lastSeen = time.Now()
			return id, s.log
		}
	}

	id = uuid.New().String()
	m.sessions[id] = &session{log: NewLog(), lastSeen: time.Now()}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.logger.Debug("session created", map[string]interface{}{"session_id": id})
	return id, m.sessions[id].log
}

// Reap drops sessions idle longer than the TTL and returns how many were
// removed.
func (m *Manager) Reap() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.idleTTL)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
		m.logger.Info("reaped idle sessions", map[string]interface{}{
			"removed":   removed,
			"remaining": len(m.sessions),
		})
	}
	return removed
}

// Run reaps idle sessions periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap()
		}
	}
}

func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
