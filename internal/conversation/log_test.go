package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate-api/internal/models"
)

func TestLogAppendPair(t *testing.T) {
	tests := []struct {
		name     string
		userText string
		botText  string
		appended bool
	}{
		{
			name:     "normal exchange",
			userText: "how many products?",
			botText:  "There are 3 product(s) in our database.",
			appended: true,
		},
		{
			name:     "empty user text rejected",
			userText: "",
			botText:  "reply",
			appended: false,
		},
		{
			name:     "whitespace user text rejected",
			userText: "   \t",
			botText:  "reply",
			appended: false,
		},
		{
			name:     "empty bot text still appended",
			userText: "hello",
			botText:  "",
			appended: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLog()
			ok := log.AppendPair(tt.userText, tt.botText)

			assert.Equal(t, tt.appended, ok)
			if tt.appended {
				require.Equal(t, 2, log.Len())
				turns := log.Turns()
				assert.Equal(t, models.SpeakerUser, turns[0].Speaker)
				assert.Equal(t, tt.userText, turns[0].Text)
				assert.Equal(t, models.SpeakerBot, turns[1].Speaker)
				assert.Equal(t, tt.botText, turns[1].Text)
			} else {
				assert.Equal(t, 0, log.Len(), "rejected append must not leave a partial pair")
			}
		})
	}
}

func TestLogDeletePair(t *testing.T) {
	log := NewLog()
	log.AppendPair("first", "reply one")
	log.AppendPair("second", "reply two")
	log.AppendPair("third", "reply three")

	ok := log.DeletePair(2)
	require.True(t, ok)

	pairs := log.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "first", pairs[0].UserText)
	assert.Equal(t, "third", pairs[1].UserText)
	assert.Equal(t, "reply three", pairs[1].BotText)
}

func TestLogDeletePairOutOfRange(t *testing.T) {
	log := NewLog()
	log.AppendPair("only", "reply")

	assert.False(t, log.DeletePair(-1))
	assert.False(t, log.DeletePair(2))
	assert.False(t, log.DeletePair(1), "trailing turn has no successor to delete with")
	assert.Equal(t, 2, log.Len())
}

// Deletion removes the addressed turn and its successor regardless of
// speakers, so a bot-turn index mid-log re-pairs the surrounding turns.
func TestLogDeletePairMidLogSpansSpeakers(t *testing.T) {
	log := NewLog()
	log.AppendPair("q1", "a1")
	log.AppendPair("q2", "a2")

	require.True(t, log.DeletePair(1))

	pairs := log.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, models.TurnPair{UserText: "q1", BotText: "a2"}, pairs[0])
}

func TestLogDeletePairOnEmptyLog(t *testing.T) {
	log := NewLog()
	assert.False(t, log.DeletePair(0))
}

func TestLogPairs(t *testing.T) {
	log := NewLog()
	log.AppendPair("q1", "a1")
	log.AppendPair("q2", "a2")

	pairs := log.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, models.TurnPair{UserText: "q1", BotText: "a1"}, pairs[0])
	assert.Equal(t, models.TurnPair{UserText: "q2", BotText: "a2"}, pairs[1])
}

// Appends followed by deleting every pair from the front always drains the
// log, whatever the interleaving.
func TestLogAppendDeleteRoundTrip(t *testing.T) {
	log := NewLog()
	for i := 0; i < 10; i++ {
		log.AppendPair(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}
	require.Equal(t, 20, log.Len())

	for log.Len() > 0 {
		require.True(t, log.DeletePair(0))
		assert.Equal(t, 0, log.Len()%2, "log length must stay even")
	}
	assert.Empty(t, log.Pairs())
}
