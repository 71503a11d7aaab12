package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visentry-backend/checkin"
	"visentry-backend/store"
)

func TestManager_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	mgr := NewManager(s, zap.NewNop(), WithClock(clock))

	snap, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepBasicDetails, snap.Step)

	_, err = mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
		return m.SubmitBasicDetails(janeDoe())
	})
	require.NoError(t, err)

	raw, err := s.Load(ctx, snap.SessionID)
	require.NoError(t, err)
	var stored Snapshot
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, StepCompanyDetails, stored.Step)
	assert.Equal(t, "Jane", stored.State.BasicDetails.FirstName)

	got, err := mgr.Get(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, stored.State, got.State)
}

func TestManager_RoundTripIsIdentity(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil, WithClock(clock))
	snap, err := mgr.Create(ctx)
	require.NoError(t, err)

	var inMemory checkin.State
	_, err = mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
		if err := m.SubmitBasicDetails(janeDoe()); err != nil {
			return err
		}
		if err := m.SubmitCompanyDetails(acme()); err != nil {
			return err
		}
		inMemory = m.State()
		return nil
	})
	require.NoError(t, err)

	got, err := mgr.Get(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, inMemory, got.State)
}

func TestManager_SavesRedirectOnError(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil, WithClock(clock))
	snap, err := mgr.Create(ctx)
	require.NoError(t, err)

	_, err = mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
		if err := m.SubmitBasicDetails(janeDoe()); err != nil {
			return err
		}
		return m.EnterBadge()
	})
	assert.ErrorIs(t, err, ErrIncomplete)

	got, err := mgr.Get(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, StepBasicDetails, got.Step)
}

func TestManager_UnknownSession(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil)

	_, err := mgr.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = mgr.Update(ctx, "missing", func(*Machine) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Discard(ctx, "missing"), ErrSessionNotFound)
}

func TestManager_Discard(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil)
	snap, err := mgr.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, mgr.Discard(ctx, snap.SessionID))
	_, err = mgr.Get(ctx, snap.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_ConcurrentMemberAdds(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil, WithClock(clock))
	snap, err := mgr.Create(ctx)
	require.NoError(t, err)
	_, err = mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
		m.step = StepAddMembers
		return nil
	})
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
				if _, err := m.AddMember(); err != nil {
					return err
				}
				m.Back()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := mgr.Get(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.State.Members, n)
	assert.Empty(t, mgr.locks)
}

func TestManager_LockTableDrainsAfterUse(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil, WithClock(clock))

	for i := 0; i < 1000; i++ {
		_, err := mgr.Get(ctx, fmt.Sprintf("unknown-%d", i))
		require.ErrorIs(t, err, ErrSessionNotFound)
	}
	assert.Empty(t, mgr.locks)

	snap, err := mgr.Create(ctx)
	require.NoError(t, err)
	_, err = mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
		return m.SubmitBasicDetails(janeDoe())
	})
	require.NoError(t, err)
	assert.Empty(t, mgr.locks)

	require.NoError(t, mgr.Discard(ctx, snap.SessionID))
	assert.Empty(t, mgr.locks)
}

func TestManager_DiscardWhileOthersWait(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(store.NewMemoryStore(), nil, WithClock(clock))
	snap, err := mgr.Create(ctx)
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(ctx, snap.SessionID, func(m *Machine) error {
				m.Back()
				return nil
			})
			if err != nil {
				assert.ErrorIs(t, err, ErrSessionNotFound)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, mgr.Discard(ctx, snap.SessionID))
	}()
	wg.Wait()

	assert.Empty(t, mgr.locks)
}
