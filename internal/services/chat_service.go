package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"farmconnect/internal/models"
	"farmconnect/internal/tasks"
	"farmconnect/internal/viewstate"

	"github.com/google/uuid"
)

// The assistant is a mock: replies come from a fixed pool, not a model.
const greeting = "नमस्ते! मैं आपका कृषि सहायक हूं। मैं आपकी खेती से जुड़े किसी भी सवाल में मदद कर सकता हूं।"

// VoiceTranscript is what the simulated voice input always hears.
const VoiceTranscript = "मेरी फसल में पत्ती पीली हो रही है"

var replyPool = []string{
	"यह एक बहुत अच्छा सवाल है! मैं आपकी समस्या को समझता हूं।",
	"कृषि विशेषज्ञों के अनुसार, इसके लिए निम्नलिखित उपाय करें:",
	"आपकी फसल की देखभाल के लिए ये सुझाव हैं:",
	"मौसम और मिट्टी के अनुसार यह सलाह है:",
	"Based on agricultural best practices, I recommend...",
}

var chatLanguages = []models.Language{
	{Code: "hi", Name: "हिंदी"},
	{Code: "mr", Name: "मराठी"},
	{Code: "en", Name: "English"},
	{Code: "bn", Name: "বাংলা"},
	{Code: "ta", Name: "தமிழ்"},
	{Code: "te", Name: "తెలుగు"},
}

var sampleQuestions = []string{
	"मेरी फसल में कीड़े लग गए हैं, क्या करूं?",
	"टमाटर की खेती कैसे करें?",
	"What's the best fertilizer for wheat?",
	"मौसम कैसा रहेगा कल?",
	"मंडी में आज के भाव क्या हैं?",
}

// ChatConfig holds the simulated delays of the assistant.
type ChatConfig struct {
	ReplyDelay time.Duration
	VoiceDelay time.Duration
	// SessionTTL is how long an idle conversation is kept.
	SessionTTL time.Duration
}

// ChatExchange is one user message and the assistant's reply to it.
type ChatExchange struct {
	Message models.Message `json:"message"`
	Reply   models.Message `json:"reply"`
}

type session struct {
	state   viewstate.Chat
	touched time.Time
}

// ChatService runs assistant conversations.
type ChatService struct {
	cfg     ChatConfig
	ctx     context.Context
	cancel  context.CancelFunc
	sweeper *tasks.Task

	mu       sync.Mutex
	sessions map[string]*session
	pick     func(n int) int
	now      func() time.Time
}

// NewChatService creates a new ChatService. Shutdown cancels every pending
// reply and stops the idle session sweep.
func NewChatService(cfg ChatConfig) *ChatService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &ChatService{
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*session),
		pick:     rand.IntN,
		now:      time.Now,
	}
	s.sweeper = tasks.Every(ctx, cfg.SessionTTL, func() bool {
		s.sweep(s.now())
		return true
	})
	return s
}

// Shutdown cancels pending replies and transcriptions. Sends started after
// Shutdown fail.
func (s *ChatService) Shutdown() {
	s.cancel()
	s.sweeper.Wait()
}

// sweep drops conversations idle for longer than the TTL. A conversation
// waiting for a reply is kept.
func (s *ChatService) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, ss := range s.sessions {
		if ss.state.Typing || now.Sub(ss.touched) < s.cfg.SessionTTL {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	if evicted > 0 {
		slog.Debug("evicted idle chat sessions", "count", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

// bind derives a context from ctx that also ends when the service shuts down.
func (s *ChatService) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Languages returns the languages the assistant can be switched to.
func (s *ChatService) Languages() []models.Language { return chatLanguages }

// SampleQuestions returns the suggested first questions.
func (s *ChatService) SampleQuestions() []string { return sampleQuestions }

func (s *ChatService) message(text, sender, lang string) models.Message {
	return models.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
		Language:  lang,
	}
}

// StartSession opens a conversation that begins with the assistant's greeting.
func (s *ChatService) StartSession() (string, viewstate.Chat) {
	id := uuid.New().String()
	state := viewstate.NewChat(s.message(greeting, models.SenderBot, ""))

	s.mu.Lock()
	s.sessions[id] = &session{state: state, touched: s.now()}
	s.mu.Unlock()
	return id, state
}

// Session returns the current state of a conversation.
func (s *ChatService) Session(id string) (viewstate.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.sessions[id]
	if !ok {
		return viewstate.Chat{}, ErrSessionNotFound
	}
	return ss.state, nil
}

// SelectLanguage changes the language later replies are tagged with.
func (s *ChatService) SelectLanguage(id, code string) (viewstate.Chat, error) {
	if !supportedLanguage(code) {
		return viewstate.Chat{}, ErrUnsupportedLanguage
	}
	return s.apply(id, viewstate.LanguageSelected{Code: code})
}

func (s *ChatService) apply(id string, e viewstate.ChatEvent) (viewstate.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.sessions[id]
	if !ok {
		return viewstate.Chat{}, ErrSessionNotFound
	}
	ss.state = viewstate.ReduceChat(ss.state, e)
	ss.touched = s.now()
	return ss.state, nil
}

// Send posts a user message and waits for the simulated reply. If ctx ends or
// the service shuts down before the reply is due, the reply is dropped and the
// context error returned; the user message stays in the conversation.
func (s *ChatService) Send(ctx context.Context, id, text string) (*ChatExchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("chat service is shut down: %w", s.ctx.Err())
	}
	ctx, stop := s.bind(ctx)
	defer stop()

	sent := s.message(text, models.SenderUser, "")
	state, err := s.apply(id, viewstate.MessageSent{Message: sent})
	if err != nil {
		return nil, err
	}

	if err := tasks.Sleep(ctx, s.cfg.ReplyDelay); err != nil {
		_, _ = s.apply(id, viewstate.ReplyCancelled{})
		return nil, err
	}

	reply := s.message(replyPool[s.pick(len(replyPool))], models.SenderBot, state.Language)
	if _, err := s.apply(id, viewstate.ReplyReceived{Message: reply}); err != nil {
		return nil, err
	}
	return &ChatExchange{Message: sent, Reply: reply}, nil
}

// Transcribe simulates voice input: after the listening delay it returns a
// fixed phrase.
func (s *ChatService) Transcribe(ctx context.Context) (string, error) {
	ctx, stop := s.bind(ctx)
	defer stop()
	if err := tasks.Sleep(ctx, s.cfg.VoiceDelay); err != nil {
		return "", err
	}
	return VoiceTranscript, nil
}

func supportedLanguage(code string) bool {
	for _, l := range chatLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}
