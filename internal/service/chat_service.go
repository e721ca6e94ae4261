package service

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/driverdash/backend/internal/chat"
)

// ChatService manages live chat sessions. Each session lives from the
// moment the chat UI opens until it closes; nothing about the conversation
// survives the session.
type ChatService struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	newRecognizer func() chat.Recognizer
}

// NewChatService creates a new chat service. newRecognizer builds the
// transcription capability attached to each session; pass nil when the
// speech engine lives client-side and events arrive over the API.
func NewChatService(newRecognizer func() chat.Recognizer) *ChatService {
	if newRecognizer == nil {
		newRecognizer = func() chat.Recognizer { return chat.NoopRecognizer{} }
	}
	return &ChatService{
		sessions:      make(map[string]*chat.Session),
		newRecognizer: newRecognizer,
	}
}

// CreateSession opens a new session seeded with the welcome turn.
func (s *ChatService) CreateSession() *chat.Session {
	id := uuid.NewString()
	session := chat.NewSession(id, s.newRecognizer(), func(hours float64, raw string) {
		log.Printf("chat: session %s detected %v hours from %q", id, hours, raw)
	})

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return session
}

// Session looks up a live session by ID.
func (s *ChatService) Session(id string) (*chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// CloseSession aborts any in-flight recognition and discards the session.
func (s *ChatService) CloseSession(id string) bool {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	session.Close()
	return true
}

// CloseAll tears down every live session, aborting in-flight recognition.
// Called during graceful shutdown.
func (s *ChatService) CloseAll() {
	s.mu.Lock()
	sessions := make([]*chat.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.sessions = make(map[string]*chat.Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// Count returns the number of live sessions.
func (s *ChatService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
