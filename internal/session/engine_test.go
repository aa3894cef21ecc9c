package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clawsolver/internal/claw"
)

func guess(t *testing.T, code string, shakes int) claw.Guess {
	t.Helper()
	c, ok := claw.Parse(code)
	require.True(t, ok, code)
	return claw.Guess{Combination: c, Shakes: shakes}
}

func TestNewSessionSuggestsOpening(t *testing.T) {
	s := New(claw.Minimax)
	assert.Len(t, s.ID, 16)

	snap := s.Snapshot()
	assert.Equal(t, StateSearching, snap.State)
	assert.Equal(t, claw.Universe, snap.Count)
	assert.Nil(t, snap.Remaining, "large sets are not listed")
	require.NotNil(t, snap.Suggestion)
	assert.Equal(t, "1111", claw.Compact(*snap.Suggestion))
	assert.Equal(t, "minimax", snap.Strategy.Name)
}

func TestSubmitUndoReset(t *testing.T) {
	s := New(claw.Minimax)

	snap, err := s.Submit(guess(t, "1111", 1))
	require.NoError(t, err)
	assert.Equal(t, 32, snap.Count)

	snap, err = s.Submit(guess(t, "2222", 2))
	require.NoError(t, err)
	assert.Equal(t, 12, snap.Count)
	assert.Len(t, snap.Remaining, 12)

	last, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, 2, last.Shakes)
	assert.Equal(t, 32, s.Snapshot().Count)

	s.Reset()
	assert.Empty(t, s.Guesses)
	assert.Equal(t, claw.Universe, s.Snapshot().Count)

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestSubmitRejectsInvalid(t *testing.T) {
	s := New(claw.Minimax)
	_, err := s.Submit(claw.Guess{Combination: claw.Combination{1, 1, 1, 1}, Shakes: 5})
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, err = s.Submit(claw.Guess{Combination: claw.Combination{0, 1, 1, 1}, Shakes: 1})
	assert.ErrorIs(t, err, ErrInvalidGuess)
	assert.Empty(t, s.Guesses)
}

func TestSolvedAndContradiction(t *testing.T) {
	s := New(claw.Expected)
	for _, g := range []claw.Guess{
		guess(t, "1111", 1), guess(t, "2222", 2), guess(t, "1223", 2), guess(t, "1232", 2),
	} {
		_, err := s.Submit(g)
		require.NoError(t, err)
	}
	snap := s.Snapshot()
	assert.Equal(t, StateSolved, snap.State)
	require.NotNil(t, snap.Suggestion)
	assert.Equal(t, "1322", claw.Compact(*snap.Suggestion))

	snap, err := s.Submit(guess(t, "1322", 3))
	require.NoError(t, err)
	assert.Equal(t, StateContradiction, snap.State)
	assert.Zero(t, snap.Count)
	assert.Nil(t, snap.Suggestion)
}

func TestSubmitAfterHit(t *testing.T) {
	s := New(claw.Minimax)
	_, err := s.Submit(guess(t, "1322", 4))
	require.NoError(t, err)
	assert.Equal(t, StateSolved, s.State())

	_, err = s.Submit(guess(t, "1111", 1))
	assert.ErrorIs(t, err, ErrFinished)
}

func TestPractice(t *testing.T) {
	secret := claw.Combination{1, 3, 2, 2}
	s, err := NewPractice(claw.Minimax, secret)
	require.NoError(t, err)

	_, err = s.Submit(guess(t, "1111", 1))
	assert.ErrorIs(t, err, ErrNotPractice)

	for i := 0; i < 10 && s.State() == StateSearching; i++ {
		next := s.Snapshot().Suggestion
		require.NotNil(t, next)
		g, _, err := s.Play(*next)
		require.NoError(t, err)
		assert.Equal(t, claw.Matches(*next, secret), g.Shakes)
	}
	assert.Equal(t, StateSolved, s.State())
	assert.Equal(t, []claw.Combination{secret}, s.Remaining())

	got, err := s.Secret()
	require.NoError(t, err)
	assert.Equal(t, secret, got)

	_, err = NewPractice(claw.Minimax, claw.Combination{})
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = New(claw.Minimax).Secret()
	assert.ErrorIs(t, err, ErrPracticeOnly)
}

func TestRandomSecretValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.True(t, RandomSecret().Valid())
	}
}

func TestDescribeMatchesSession(t *testing.T) {
	gs := []claw.Guess{guess(t, "1111", 1), guess(t, "2222", 2)}
	s := New(claw.RemainingOnly)
	for _, g := range gs {
		_, err := s.Submit(g)
		require.NoError(t, err)
	}
	want := s.Snapshot()
	got := Describe(gs, claw.RemainingOnly)
	assert.Equal(t, want.Count, got.Count)
	assert.Equal(t, want.Suggestion, got.Suggestion)
	assert.Equal(t, want.Remaining, got.Remaining)
	assert.Equal(t, "1223", claw.Compact(*got.Suggestion))
}
