package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Service encapsulates conversation state management. Transcripts are
// append-only and scoped to a single session; nothing survives a restart.
type Service struct {
	mu          sync.RWMutex
	capacity    int
	sessions    map[string]chat.Session
	transcripts map[string][]chat.Turn
}

// NewService bootstraps the in-memory transcript store. capacity sets the
// initial allocation per transcript; values below 1 fall back to a default.
func NewService(capacity int) *Service {
	if capacity < 1 {
		capacity = 16
	}
	return &Service{
		capacity:    capacity,
		sessions:    make(map[string]chat.Session),
		transcripts: make(map[string][]chat.Turn),
	}
}

// CreateSession provisions an anonymous session with an empty transcript.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.transcripts[session.ID] = make([]chat.Turn, 0, s.capacity)
	s.mu.Unlock()

	return session, nil
}

// EnsureSession guarantees a transcript exists for sessionID. Calling it on a
// known session is a no-op; an existing transcript is never reset. A lost or
// unknown session is silently recreated empty rather than reported as an error.
func (s *Service) EnsureSession(_ context.Context, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}

	session := chat.Session{
		ID:        sessionID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sessionID] = session
	s.transcripts[sessionID] = make([]chat.Turn, 0, s.capacity)
	return session, nil
}

// AppendTurn adds a turn to the end of its session transcript. Content is
// stored verbatim; the empty string is a valid turn.
func (s *Service) AppendTurn(_ context.Context, turn chat.Turn) (chat.Turn, error) {
	if turn.SessionID == "" {
		return chat.Turn{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[turn.SessionID]; !ok {
		return chat.Turn{}, ErrSessionNotFound
	}

	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.transcripts[turn.SessionID] = append(s.transcripts[turn.SessionID], turn)
	return turn, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Transcript returns the stored turns for the provided session, oldest first.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.transcripts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}
