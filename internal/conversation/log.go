// internal/conversation/log.go
package conversation

import (
	"strings"
	"sync"

	"shopmate-api/internal/models"
)

// Log is an append-only record of one session's exchange, stored as a flat
// turn sequence. Turns are only ever added or removed in user/bot pairs, so
// a well-formed log always has even length with user turns at even offsets.
type Log struct {
	mu    sync.Mutex
	turns []models.Turn
}

func NewLog() *Log {
	return &Log{}
}

// AppendPair records one exchange. A blank user text is rejected outright:
// nothing is appended, not even the bot turn, so the pairing invariant holds.
func (l *Log) AppendPair(userText, botText string) bool {
	if strings.TrimSpace(userText) == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns,
		models.Turn{Speaker: models.SpeakerUser, Text: userText},
		models.Turn{Speaker: models.SpeakerBot, Text: botText},
	)
	return true
}

// DeletePair removes the turns at index and index+1, where index addresses
// the user turn of a pair. The successor goes whatever its speaker; indexes
// without a successor are ignored.
func (l *Log) DeletePair(index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index+1 >= len(l.turns) {
		return false
	}
	l.turns = append(l.turns[:index], l.turns[index+2:]...)
	return true
}

// Turns returns a copy of the raw turn sequence.
func (l *Log) Turns() []models.Turn {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Pairs renders the log as user/bot exchanges. Pairing restarts at every
// user turn, so on a malformed log a user turn followed by another user
// turn yields a pair with an empty bot text, and a leading bot turn is
// paired with an empty user text.
func (l *Log) Pairs() []models.TurnPair {
	l.mu.Lock()
	defer l.mu.Unlock()

	pairs := make([]models.TurnPair, 0, len(l.turns)/2)
	for i := 0; i < len(l.turns); {
		turn := l.turns[i]
		if turn.Speaker != models.SpeakerUser {
			pairs = append(pairs, models.TurnPair{BotText: turn.Text})
			i++
			continue
		}
		pair := models.TurnPair{UserText: turn.Text}
		if i+1 < len(l.turns) && l.turns[i+1].Speaker == models.SpeakerBot {
			pair.BotText = l.turns[i+1].Text
			i += 2
		} else {
			i++
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// Len reports the number of turns, not pairs.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}
