package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
)

// SessionsRepository keeps uploaded tables per browser session. Nothing
// outlives the process.
type SessionsRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewSessionsRepository() *SessionsRepository {
	return &SessionsRepository{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

// SaveSession stores the session, replacing one with the same ID.
func (r *SessionsRepository) SaveSession(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	if prev, ok := r.sessions[session.ID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.sessions[session.ID] = &stored

	return nil
}

// Session returns a copy of the stored session and marks it as used.
func (r *SessionsRepository) Session(ctx context.Context, id string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	session.UpdatedAt = r.now()

	found := *session
	return &found, nil
}

func (r *SessionsRepository) DeleteSession(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)

	return nil
}

// DeleteExpiredSessions removes sessions not used since before and returns
// how many were removed.
func (r *SessionsRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *SessionsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
