package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clawsolver/internal/claw"
	"github.com/robalobadob/clawsolver/internal/session"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := session.New(claw.Minimax)
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrUnknownSession)
	assert.NoError(t, st.Delete(ctx, s.ID))
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := session.New(claw.Minimax)
	require.NoError(t, st.Save(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, s.ID, func(s *session.Session) error {
				_, err := s.Submit(claw.Guess{Combination: claw.Combination{1, 1, 1, 1}, Shakes: 1})
				return err
			})
		}()
	}
	wg.Wait()
	assert.Len(t, s.Guesses, 8)

	boom := errors.New("boom")
	assert.ErrorIs(t, st.Update(ctx, s.ID, func(*session.Session) error { return boom }), boom)
	assert.ErrorIs(t, st.Update(ctx, "missing", func(*session.Session) error { return nil }), session.ErrUnknownSession)
}

func TestMemoryStorePrune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old := session.New(claw.Minimax)
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)
	fresh := session.New(claw.Minimax)
	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, fresh))

	n, err := st.Prune(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = st.Get(ctx, old.ID)
	assert.Error(t, err)
	_, err = st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
