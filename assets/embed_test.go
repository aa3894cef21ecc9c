package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Equal(t, "sql/001_solves.sql", ms[0].Name)
	assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS solves")
}

func TestDemoHistorySkipsComments(t *testing.T) {
	lines, err := DemoHistory()
	require.NoError(t, err)
	assert.Equal(t, []string{"1111 1", "2222 2", "1223 2", "1232 2"}, lines)
}
