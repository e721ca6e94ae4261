package domain

// Speaker identifies who produced a conversation turn.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// ConversationTurn is one entry of a chat session's append-only log.
// Turns are never removed individually; the log dies with the session.
type ConversationTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}
