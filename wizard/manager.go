package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visentry-backend/store"
)

// Manager loads, mutates and saves check-in sessions. Mutations of the same
// session are serialized; the last write wins.
type Manager struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the table once nobody holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(s store.Store, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:  s,
		logger: logger,
		now:    time.Now,
		locks:  make(map[string]*sessionLock),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// Create starts a new session and persists it.
func (m *Manager) Create(ctx context.Context) (Snapshot, error) {
	id := uuid.NewString()
	unlock := m.lock(id)
	defer unlock()

	snap := New(m.now).Snapshot(id)
	if err := m.save(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	m.logger.Info("check-in session created", zap.String("session_id", id))
	return snap, nil
}

func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	unlock := m.lock(id)
	defer unlock()
	return m.load(ctx, id)
}

// Update runs fn against the session's machine and persists the result.
// The session is saved even when fn fails, so redirects survive.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Machine) error) (Snapshot, error) {
	unlock := m.lock(id)
	defer unlock()

	snap, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	machine := Restore(snap, m.now)
	fnErr := fn(machine)

	next := machine.Snapshot(id)
	if err := m.save(ctx, next); err != nil {
		return Snapshot{}, err
	}
	if fnErr != nil {
		m.logger.Debug("check-in step rejected",
			zap.String("session_id", id),
			zap.String("step", string(next.Step)),
			zap.Error(fnErr))
	}
	return next, fnErr
}

// Discard removes a session.
func (m *Manager) Discard(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	if _, err := m.load(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("check-in session discarded", zap.String("session_id", id))
	return nil
}

func (m *Manager) load(ctx context.Context, id string) (Snapshot, error) {
	b, err := m.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Snapshot{}, ErrSessionNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	snap.SessionID = id
	snap.State.Normalize()
	return snap, nil
}

func (m *Manager) save(ctx context.Context, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", snap.SessionID, err)
	}
	return m.store.Save(ctx, snap.SessionID, b)
}
