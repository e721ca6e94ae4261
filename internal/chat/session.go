// Package chat coordinates typed input and a live transcription stream into
// one conversation log, extracting shift lengths from every finalized
// utterance.
package chat

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/driverdash/backend/internal/domain"
	"github.com/driverdash/backend/internal/duration"
)

// State is the session's listening state. Transitions happen in exactly one
// place (transition) so interleavings like "interim update after stop"
// cannot half-apply.
type State string

const (
	// StateIdle - not listening; the initial state and the destination of
	// every stop, final result, and stream error.
	StateIdle State = "idle"
	// StateListening - a recognition stream is live and interim results
	// may arrive.
	StateListening State = "listening"
)

const (
	welcomeMessage = "Hi! Tell me how long you want to drive today, like \"2 hours\" or \"two and a half\"."
	noMatchMessage = "Sorry, I didn't catch a shift length in that. Try something like \"2 hours\" or \"two and a half\"."
	micErrMessage  = "I had trouble with the microphone there. Tap the mic to try again."
)

// HoursListener is notified whenever a finalized utterance yields a
// duration.
type HoursListener func(hours float64, rawText string)

// Session owns one conversation: the append-only turn log, the listening
// state machine, and the bridge between typed submissions and the
// transcription stream. Both input paths converge on the same
// append-parse-report sequence.
//
// A mutex guards the session because HTTP delivery may touch it from
// concurrent requests; semantically every operation is still one atomic
// event-loop step.
type Session struct {
	mu sync.Mutex

	id         string
	recognizer Recognizer
	listener   HoursListener

	state   State
	turns   []domain.ConversationTurn
	interim string

	lastHours    float64
	hasLastHours bool

	closed bool
}

// NewSession creates a session seeded with the welcome turn.
func NewSession(id string, rec Recognizer, listener HoursListener) *Session {
	if rec == nil {
		rec = NoopRecognizer{}
	}
	return &Session{
		id:         id,
		recognizer: rec,
		listener:   listener,
		state:      StateIdle,
		turns:      []domain.ConversationTurn{{Speaker: domain.SpeakerBot, Text: welcomeMessage}},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current listening state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the conversation log in order.
func (s *Session) Turns() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Interim returns the latest interim transcript, empty outside Listening.
func (s *Session) Interim() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interim
}

// LastHours returns the most recently detected duration, if any.
func (s *Session) LastHours() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHours, s.hasLastHours
}

// ListeningSupported reports whether the attached recognizer can listen at
// all. The UI disables the mic control when false.
func (s *Session) ListeningSupported() bool {
	return s.recognizer.Supported()
}

// SubmitText handles a typed submission. An empty (or all-whitespace)
// submission is a no-op; anything else runs the identical sequence as a
// finalized transcript. Typed input bypasses the listening states entirely.
func (s *Session) SubmitText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.finalizeUtterance(text)
}

// StartListening begins a recognition stream. Starting while already
// listening, after close, or without a supported engine is a no-op rather
// than a queued request.
func (s *Session) StartListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateIdle || !s.recognizer.Supported() {
		return
	}
	s.transition(StateListening)
	s.recognizer.Start()
}

// StopListening gracefully ends the current stream and returns to Idle.
func (s *Session) StopListening() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateListening {
		return
	}
	s.recognizer.Stop()
	s.transition(StateIdle)
}

// HandleTranscript delivers one engine result. Interim results only replace
// the interim display; a final result appends the user turn, parses it, and
// reports back, exactly like SubmitText.
func (s *Session) HandleTranscript(transcript string, isFinal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if !isFinal {
		// A straggling interim after stop must not resurrect the stream.
		if s.state == StateListening {
			s.interim = transcript
		}
		return
	}
	transcript = strings.TrimSpace(transcript)
	if transcript != "" {
		s.finalizeUtterance(transcript)
	}
	s.transition(StateIdle)
}

// HandleStreamError records one recoverable engine failure in the log and
// returns to Idle. Never fatal; the user restarts manually.
func (s *Session) HandleStreamError(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	log.Printf("chat: recognition stream error [%s]: %s (session %s)", code, message, s.id)
	s.turns = append(s.turns, domain.ConversationTurn{Speaker: domain.SpeakerBot, Text: micErrMessage})
	s.transition(StateIdle)
}

// Close aborts any in-flight recognition so no final result lands in a
// session that no longer exists. The log is simply dropped with the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.recognizer.Abort()
	s.transition(StateIdle)
}

// finalizeUtterance runs the shared append-parse-report sequence for one
// complete utterance. Caller holds the lock.
func (s *Session) finalizeUtterance(text string) {
	s.turns = append(s.turns, domain.ConversationTurn{Speaker: domain.SpeakerUser, Text: text})

	hours, ok := duration.Parse(text)
	reply := noMatchMessage
	if ok {
		reply = detectedMessage(hours)
		s.lastHours = hours
		s.hasLastHours = true
	}
	s.turns = append(s.turns, domain.ConversationTurn{Speaker: domain.SpeakerBot, Text: reply})

	if ok && s.listener != nil {
		s.listener(hours, text)
	}
}

// transition is the single place session state changes.
func (s *Session) transition(next State) {
	if next != StateListening {
		s.interim = ""
	}
	s.state = next
}

// detectedMessage formats the confirmation with "hour" pluralized for N!=1.
func detectedMessage(hours float64) string {
	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}
	return "Detected " + strconv.FormatFloat(hours, 'f', -1, 64) + " " + unit + "."
}
