package viewstate

import (
	"strings"

	"farmconnect/internal/models"
)

// DefaultLanguage is the language a new chat starts in.
const DefaultLanguage = "hi"

// Chat is the state of one assistant conversation.
type Chat struct {
	Language string           `json:"language"`
	Messages []models.Message `json:"messages"`
	Typing   bool             `json:"typing"`
}

// NewChat starts a conversation with the assistant's greeting.
func NewChat(greeting models.Message) Chat {
	return Chat{Language: DefaultLanguage, Messages: []models.Message{greeting}}
}

// ChatEvent is an input the chat reacts to.
type ChatEvent interface{ chatEvent() }

// LanguageSelected switches the reply language.
type LanguageSelected struct{ Code string }

// MessageSent appends the user's message. Blank messages are ignored.
type MessageSent struct{ Message models.Message }

// ReplyReceived appends the assistant's reply.
type ReplyReceived struct{ Message models.Message }

// ReplyCancelled drops a pending reply.
type ReplyCancelled struct{}

func (LanguageSelected) chatEvent() {}
func (MessageSent) chatEvent()      {}
func (ReplyReceived) chatEvent()    {}
func (ReplyCancelled) chatEvent()   {}

// ReduceChat applies e to s.
func ReduceChat(s Chat, e ChatEvent) Chat {
	switch ev := e.(type) {
	case LanguageSelected:
		if ev.Code != "" {
			s.Language = ev.Code
		}
	case MessageSent:
		msg := ev.Message
		msg.Text = strings.TrimSpace(msg.Text)
		if msg.Text == "" {
			return s
		}
		s.Messages = appendMessage(s.Messages, msg)
		s.Typing = true
	case ReplyReceived:
		s.Messages = appendMessage(s.Messages, ev.Message)
		s.Typing = false
	case ReplyCancelled:
		s.Typing = false
	}
	return s
}

func appendMessage(msgs []models.Message, m models.Message) []models.Message {
	out := make([]models.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
