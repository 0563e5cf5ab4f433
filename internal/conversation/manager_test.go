package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shopmate-api/internal/common/logger"
)

func testManager(t *testing.T, idleTTL time.Duration) *Manager {
	t.Helper()
	return NewManager(idleTTL, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestManagerAcquire(t *testing.T) {
	m := testManager(t, time.Minute)

	id, log := m.Acquire("")
	require.NotEmpty(t, id)
	require.NotNil(t, log)

	log.AppendPair("hello", "hi")

	sameID, sameLog := m.Acquire(id)
	assert.Equal(t, id, sameID)
	assert.Equal(t, 2, sameLog.Len(), "acquiring an existing session returns its log")
	assert.Equal(t, 1, m.SessionCount())
}

func TestManagerAcquireUnknownIDCreatesFreshSession(t *testing.T) {
	m := testManager(t, time.Minute)

	id, log := m.Acquire("no-such-session")
	assert.NotEqual(t, "no-such-session", id, "unknown IDs are replaced, not adopted")
	assert.Equal(t, 0, log.Len())
}

func TestManagerReap(t *testing.T) {
	m := testManager(t, 10*time.Millisecond)

	staleID, _ := m.Acquire("")
	time.Sleep(20 * time.Millisecond)
	freshID, _ := m.Acquire("")

	removed := m.Reap()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.SessionCount())

	keptID, _ := m.Acquire(freshID)
	assert.Equal(t, freshID, keptID)

	replacedID, _ := m.Acquire(staleID)
	assert.NotEqual(t, staleID, replacedID)
}

func TestManagerReapNothingIdle(t *testing.T) {
	m := testManager(t, time.Hour)
	m.Acquire("")
	m.Acquire("")

	assert.Equal(t, 0, m.Reap())
	assert.Equal(t, 2, m.SessionCount())
}
