package chat

// RecognitionResult is one event from a transcription engine. Interim
// results replace each other on screen; a final result closes out one
// spoken utterance.
type RecognitionResult struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"is_final"`
}

// RecognitionError is a recoverable engine-side failure (mic revoked,
// no speech, network hiccup inside the engine).
type RecognitionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Recognizer is the capability interface over an external transcription
// engine. The session treats it purely as an event source: it never touches
// microphone permissioning itself. Implementations deliver results and
// errors through the session's HandleTranscript/HandleStreamError.
type Recognizer interface {
	// Supported reports whether a real engine is available. Callers check
	// this once at session setup and disable the listening control when
	// false instead of starting and failing.
	Supported() bool

	// Start asks the engine to begin one recognition stream.
	Start()

	// Stop requests graceful termination of the current stream.
	Stop()

	// Abort kills any in-flight recognition without delivering a final
	// result. Used on session teardown.
	Abort()
}

// NoopRecognizer is the stand-in when no transcription engine is attached,
// e.g. when recognition runs client-side and events arrive over HTTP, or
// when the platform has no engine at all.
type NoopRecognizer struct{}

func (NoopRecognizer) Supported() bool { return false }
func (NoopRecognizer) Start()          {}
func (NoopRecognizer) Stop()           {}
func (NoopRecognizer) Abort()          {}
