package score

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/survivalarena/internal/clock"
	"github.com/samdwyer/survivalarena/internal/storage"
)

func newTestAggregator(t *testing.T, kv storage.KV) (*Aggregator, *clock.Manual, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clk := clock.NewManual(time.Unix(1000, 0))
	return NewAggregator(kv, clk, logger), clk, hook
}

func TestAddScoreMonotonic(t *testing.T) {
	a, _, _ := newTestAggregator(t, storage.NewMemoryStore())

	prevScore, prevHigh := a.Score(), a.HighScore()
	for _, n := range []int{5, 1, 30, 7} {
		a.AddScore(n, "test")
		assert.Greater(t, a.Score(), prevScore)
		assert.GreaterOrEqual(t, a.HighScore(), prevHigh)
		prevScore, prevHigh = a.Score(), a.HighScore()
	}
	assert.Equal(t, 43, a.Score())
	assert.Equal(t, a.Score(), a.HighScore())
}

func TestAddScoreIgnoresNonPositive(t *testing.T) {
	a, _, _ := newTestAggregator(t, nil)
	assert.Equal(t, 0, a.AddScore(0, "none"))
	assert.Equal(t, 0, a.AddScore(-10, "penalty"))
	assert.Equal(t, 0, a.Score())
}

func TestHighScorePersistedAndLoaded(t *testing.T) {
	kv := storage.NewMemoryStore()
	a, _, _ := newTestAggregator(t, kv)

	a.AddScore(120, "test")
	v, ok, err := kv.Get(KeyHighScore)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "120", v)

	b, _, _ := newTestAggregator(t, kv)
	assert.Equal(t, 120, b.HighScore())
	assert.Equal(t, 0, b.Score())

	b.AddScore(50, "test")
	assert.Equal(t, 120, b.HighScore(), "high score never decreases")
	b.AddScore(100, "test")
	assert.Equal(t, 150, b.HighScore())
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Fail(true)
	a, _, hook := newTestAggregator(t, kv)

	a.AddScore(10, "test")

	assert.Equal(t, 10, a.Score())
	assert.Equal(t, 10, a.HighScore())
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "persistence faults are logged")
}

func TestAddKillPoints(t *testing.T) {
	a, clk, _ := newTestAggregator(t, nil)
	a.StartNewGame()

	assert.Equal(t, 10, a.AddKill(nil))
	assert.Equal(t, 8, a.AddKill(&MobInfo{Kind: "grunt", Health: 30, Speed: 1})) // 3 + 5

	clk.Advance(10 * time.Minute)
	assert.Equal(t, 20, a.AddKill(nil)) // 2x after ten minutes

	clk.Advance(60 * time.Minute)
	assert.Equal(t, 3.0, a.TimeMultiplier())
	assert.Equal(t, 30, a.AddKill(nil))

	assert.Equal(t, 4, a.Kills())
}

func TestDamageAccumulatesWithoutScore(t *testing.T) {
	a, _, _ := newTestAggregator(t, nil)
	a.AddDamageDealt(40)
	a.AddDamageTaken(15)
	a.AddDamageTaken(-5)

	s := a.Stats()
	assert.Equal(t, 40, s.DamageDealt)
	assert.Equal(t, 15, s.DamageTaken)
	assert.Equal(t, 0, s.Score)
}

func TestResetKeepsHighScore(t *testing.T) {
	a, _, _ := newTestAggregator(t, nil)
	a.AddScore(90, "test")
	a.AddKill(nil)

	a.Reset()

	assert.Equal(t, 0, a.Score())
	assert.Equal(t, 0, a.Kills())
	assert.Equal(t, 100, a.HighScore())
}

func TestEndGamePersistsLifetimeStats(t *testing.T) {
	kv := storage.NewMemoryStore()
	a, clk, _ := newTestAggregator(t, kv)

	a.StartNewGame()
	a.AddKill(nil)
	a.AddDamageDealt(25)
	clk.Advance(95 * time.Second)

	stats := a.EndGame()
	assert.Equal(t, "01:35", stats.PlayTimeFmt)
	assert.Equal(t, 1, stats.Lifetime.GamesPlayed)

	raw, ok, err := kv.Get(KeyPlayerStats)
	require.NoError(t, err)
	require.True(t, ok)
	var saved PlayerStats
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	assert.Equal(t, 1, saved.TotalKills)
	assert.Equal(t, 10, saved.TotalScore)
	assert.Equal(t, 25, saved.DamageDealt)
	assert.Equal(t, 95.0, saved.PlayTimeSeconds)

	b, _, _ := newTestAggregator(t, kv)
	assert.Equal(t, 1, b.Stats().Lifetime.GamesPlayed)
}

func TestEndGameWithoutStartIsNoop(t *testing.T) {
	kv := storage.NewMemoryStore()
	a, _, _ := newTestAggregator(t, kv)
	a.EndGame()

	_, ok, _ := kv.Get(KeyPlayerStats)
	assert.False(t, ok)
}

func TestFormatPlayTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{754 * time.Second, "12:34"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatPlayTime(tt.d); got != tt.want {
			t.Errorf("FormatPlayTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBindRewards(t *testing.T) {
	a, _, _ := newTestAggregator(t, nil)
	a.StartNewGame()
	m := NewMilestones()
	a.BindRewards(m)

	m.ObserveKills(1)
	assert.Equal(t, AchievementFirstBlood.Reward, a.Score())

	m.ObserveKills(10)
	assert.Equal(t, 50+50, a.Score(), "medals are worth half their value")

	m.ObserveKills(12)
	m.ObserveBoss()
	m.ObserveBoss()
	assert.Equal(t, 100+200, a.Score(), "rewards are granted once")

	stats := a.EndGame()
	assert.Equal(t, 50, stats.Lifetime.MedalBonus)
	assert.Equal(t, 250, stats.Lifetime.AchievementBonus)
}

func TestMilestonesSurvival(t *testing.T) {
	m := NewMilestones()
	var got []string
	m.OnAchievement(func(a Achievement) { got = append(got, a.ID) })

	m.ObserveSurvival(299)
	m.ObserveSurvival(300)
	m.ObserveSurvival(400)
	assert.Equal(t, []string{"survivor"}, got)

	m.Reset()
	m.ObserveSurvival(300)
	assert.Len(t, got, 2)
}
