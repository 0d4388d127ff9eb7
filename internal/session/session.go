package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultQuietInterval is how long input must stay unchanged before a
// translation request is dispatched. Keep conservative enough to coalesce
// normal typing and interim speech-recognition updates into one call.
const DefaultQuietInterval = 500 * time.Millisecond

// requestTimeout bounds a single provider call.
const requestTimeout = 20 * time.Second

// Translator is the slice of the remote gateway the session depends on.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// State is a snapshot of one translation session.
type State struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	Pending        bool   `json:"pending"`
}

// Notice is a user-visible, non-fatal failure report. The channel it travels
// on is owned by the session and closed when the session closes.
type Notice struct {
	Message string `json:"message"`
}

// request is the triple captured at schedule time. It is never re-read from
// session state once scheduled.
type request struct {
	text       string
	sourceLang string
	targetLang string
}

// Session coalesces a rapidly-changing (text, source, target) triple into at
// most one outbound translation call per quiet period and applies only the
// most recent result.
//
// The debounce is a single-slot timer: every input change stops the previous
// timer before arming a new one, so at most one scheduled call can ever be
// live. A sequence number voids whatever was in flight when a newer change
// arrives, so a slow earlier response can never overwrite a later one.
type Session struct {
	id         string
	translator Translator
	quiet      time.Duration
	onUpdate   func(State)

	mu         sync.Mutex
	state      State
	timer      *time.Timer
	seq        uint64
	pendingSeq uint64
	notices    chan Notice
	closed     bool
}

// NewSession constructs a session for the given language pair. A quiet value
// of zero selects DefaultQuietInterval. onUpdate, when non-nil, is invoked
// (without the lock held) every time the translated text changes.
func NewSession(tr Translator, sourceLang, targetLang string, quiet time.Duration, onUpdate func(State)) *Session {
	if quiet <= 0 {
		quiet = DefaultQuietInterval
	}
	return &Session{
		id:         uuid.NewString(),
		translator: tr,
		quiet:      quiet,
		onUpdate:   onUpdate,
		state:      State{SourceLanguage: sourceLang, TargetLanguage: targetLang},
		notices:    make(chan Notice, 8),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Notices returns the session-owned failure channel. It is closed by Close.
func (s *Session) Notices() <-chan Notice { return s.notices }

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetText records a text change. Empty input clears the translated text
// immediately and schedules nothing; anything else (re)arms the quiet timer.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.OriginalText = text
	if strings.TrimSpace(text) == "" {
		s.cancelScheduledLocked()
		s.state.TranslatedText = ""
		s.state.Pending = false
		snap, cb := s.state, s.onUpdate
		s.mu.Unlock()
		if cb != nil {
			cb(snap)
		}
		return
	}
	s.scheduleLocked()
	s.mu.Unlock()
}

// SetLanguages records a language-pair change. The pair is an input to the
// debounce just like the text, so a non-empty buffer reschedules.
func (s *Session) SetLanguages(sourceLang, targetLang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.SourceLanguage = sourceLang
	s.state.TargetLanguage = targetLang
	if strings.TrimSpace(s.state.OriginalText) == "" {
		s.cancelScheduledLocked()
		return
	}
	s.scheduleLocked()
}

// Swap exchanges source/target languages together with their text buffers as
// one atomic update, then behaves as an ordinary input change: the swapped
// original text is scheduled for translation unless it is empty. Swap makes
// no network call of its own.
func (s *Session) Swap() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state
	}
	s.state.SourceLanguage, s.state.TargetLanguage = s.state.TargetLanguage, s.state.SourceLanguage
	s.state.OriginalText, s.state.TranslatedText = s.state.TranslatedText, s.state.OriginalText
	if strings.TrimSpace(s.state.OriginalText) == "" {
		s.cancelScheduledLocked()
		s.state.Pending = false
	} else {
		s.scheduleLocked()
	}
	return s.state
}

// Close stops the timer, voids any in-flight call, and closes the notice
// channel. The session accepts no input afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancelScheduledLocked()
	close(s.notices)
}

// cancelScheduledLocked stops the pending timer (if any) and bumps the
// sequence so an in-flight response becomes a no-op.
func (s *Session) cancelScheduledLocked() {
	if s.timer != nil {
		_ = s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}

// scheduleLocked arms the single-slot timer with the triple captured now.
func (s *Session) scheduleLocked() {
	if s.timer != nil {
		_ = s.timer.Stop()
	}
	s.seq++
	seq := s.seq
	req := request{
		text:       s.state.OriginalText,
		sourceLang: s.state.SourceLanguage,
		targetLang: s.state.TargetLanguage,
	}
	s.timer = time.AfterFunc(s.quiet, func() { s.fire(seq, req) })
}

// fire dispatches one translation call. It runs on the timer goroutine.
func (s *Session) fire(seq uint64, req request) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.state.Pending = true
	s.pendingSeq = seq
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	translated, err := s.translator.Translate(ctx, req.text, req.sourceLang, req.targetLang)
	cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.pendingSeq == seq {
		s.state.Pending = false
	}
	if seq != s.seq {
		// superseded while in flight; drop the result
		s.mu.Unlock()
		return
	}
	if err != nil {
		log.Printf("[%s] translate error: %v", s.id, err)
		// keep the previous translated text on failure; the notice is the
		// user-visible signal
		select {
		case s.notices <- Notice{Message: "translation failed"}:
		default:
			log.Printf("[%s] notice channel full, dropping", s.id)
		}
		s.mu.Unlock()
		return
	}
	s.state.TranslatedText = translated
	snap, cb := s.state, s.onUpdate
	s.mu.Unlock()
	if cb != nil {
		cb(snap)
	}
}
