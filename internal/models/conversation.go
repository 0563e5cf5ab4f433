// internal/models/conversation.go
package models

// Speaker identifies the author of a conversation turn.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Turn is one message in a conversation.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// TurnPair is a user turn and its bot reply, treated as one deletable unit.
type TurnPair struct {
	UserText string `json:"userText"`
	BotText  string `json:"botText"`
}
