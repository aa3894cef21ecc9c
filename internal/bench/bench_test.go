package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/clawsolver/internal/claw"
)

func TestPlayFindsSecret(t *testing.T) {
	secret := claw.Combination{1, 1, 3, 2}
	path, ok := Play(secret, claw.Minimax)
	require.True(t, ok)

	want := []string{"1111", "1122", "1123", "1132"}
	got := make([]string, len(path))
	for i, g := range path {
		got[i] = claw.Compact(g.Combination)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, claw.MaxShakes, path[len(path)-1].Shakes)
}

func TestPlayEverySecret(t *testing.T) {
	for _, s := range claw.Strategies() {
		for _, secret := range claw.All() {
			path, ok := Play(secret, s)
			require.True(t, ok, "%s on %s", s, secret)
			assert.Equal(t, secret, path[len(path)-1].Combination)
		}
	}
}

func TestEvaluate(t *testing.T) {
	reports, err := Evaluate(context.Background(), claw.Minimax, claw.RemainingOnly, claw.Expected)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	mm, rem, ev := reports[0], reports[1], reports[2]
	assert.Equal(t, "minimax", mm.Strategy.Name)
	assert.Equal(t, 81, mm.Games)
	assert.Zero(t, mm.Failures)
	assert.Equal(t, 6, mm.Worst)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 6, 4: 32, 5: 34, 6: 6}, mm.Histogram)
	assert.InDelta(t, 357.0/81, mm.Average, 1e-9)

	assert.Equal(t, 9, rem.Worst)
	assert.Len(t, rem.Hardest, 1)

	assert.Equal(t, 5, ev.Worst)
	assert.Less(t, ev.Average, mm.Average)
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, claw.Minimax)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateDefaultsToAll(t *testing.T) {
	reports, err := Evaluate(context.Background())
	require.NoError(t, err)
	assert.Len(t, reports, len(claw.Strategies()))
}
