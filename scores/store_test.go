package scores

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "scores.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// Reopening runs the migrations again without complaint.
	store, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.skirmish/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".skirmish", "scores.db"))
	assert.NoError(t, err)
}

func TestRuns(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestScore("asteroids")
	require.NoError(t, err)
	assert.Zero(t, best)

	for _, score := range []int{100, 50, 200, 100} {
		_, err := store.SaveRun(RunResult{Game: "asteroids", Score: score, Elapsed: 12500 * time.Millisecond, Reason: "destroyed"})
		require.NoError(t, err)
	}
	_, err = store.SaveRun(RunResult{Game: "other", Score: 999})
	require.NoError(t, err)

	runs, err := store.TopRuns("asteroids", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 200, runs[0].Score)
	assert.Equal(t, 100, runs[1].Score)
	assert.Equal(t, 100, runs[2].Score)
	assert.Less(t, runs[1].ID, runs[2].ID)
	assert.Equal(t, 12500*time.Millisecond, runs[0].Elapsed)
	assert.Equal(t, "destroyed", runs[0].Reason)
	assert.WithinDuration(t, time.Now(), runs[0].CreatedAt, time.Minute)

	best, err = store.BestScore("asteroids")
	require.NoError(t, err)
	assert.Equal(t, 200, best)

	all, err := store.TopRuns("asteroids", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestRunSeedRoundTrip(t *testing.T) {
	store := openTemp(t)

	_, err := store.SaveRun(RunResult{Game: "asteroids", Seed: 1 << 63})
	require.NoError(t, err)

	runs, err := store.TopRuns("asteroids", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(1<<63), runs[0].Seed)
}

func TestSaveRunNeedsGame(t *testing.T) {
	store := openTemp(t)
	_, err := store.SaveRun(RunResult{Score: 10})
	assert.ErrorContains(t, err, "scores:")
}

func TestBattles(t *testing.T) {
	store := openTemp(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := store.SaveBattle(BattleResult{Winner: "player", Rounds: 3, Turns: 14, Survivors: []string{"Silver", "Blue"}, Duration: 42 * time.Second, CreatedAt: base})
	require.NoError(t, err)
	_, err = store.SaveBattle(BattleResult{Winner: "enemy", Rounds: 5, Turns: 20, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	battles, err := store.RecentBattles(10)
	require.NoError(t, err)
	require.Len(t, battles, 2)

	assert.Equal(t, "enemy", battles[0].Winner)
	assert.Nil(t, battles[0].Survivors)
	assert.True(t, battles[0].CreatedAt.Equal(base.Add(time.Hour)))

	assert.Equal(t, "player", battles[1].Winner)
	assert.Equal(t, []string{"Silver", "Blue"}, battles[1].Survivors)
	assert.Equal(t, 42*time.Second, battles[1].Duration)
	assert.Equal(t, 3, battles[1].Rounds)
	assert.Equal(t, 14, battles[1].Turns)

	latest, err := store.RecentBattles(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "enemy", latest[0].Winner)
}
