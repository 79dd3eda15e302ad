package score

// Medal is a collectible awarded for a milestone.
type Medal struct {
	ID    string
	Name  string
	Value int
}

// Achievement is a one-time unlock with a score reward.
type Achievement struct {
	ID     string
	Name   string
	Reward int
}

// RewardSource reports collected medals and unlocked achievements.
type RewardSource interface {
	OnMedal(func(Medal))
	OnAchievement(func(Achievement))
}

// BindRewards converts rewards from src into score: medals are worth half their
// value, achievements their full reward.
func (a *Aggregator) BindRewards(src RewardSource) {
	if src == nil {
		return
	}
	src.OnMedal(func(m Medal) {
		bonus := a.AddScore(m.Value/2, "medal:"+m.ID)
		a.medalBonus += bonus
	})
	src.OnAchievement(func(ach Achievement) {
		bonus := a.AddScore(ach.Reward, "achievement:"+ach.ID)
		a.achieveBonus += bonus
	})
}

// Kill-count medals, in ascending order.
var killMedals = []struct {
	kills int
	medal Medal
}{
	{10, Medal{ID: "bronze_hunter", Name: "Bronze Hunter", Value: 100}},
	{25, Medal{ID: "silver_hunter", Name: "Silver Hunter", Value: 250}},
	{50, Medal{ID: "gold_hunter", Name: "Gold Hunter", Value: 500}},
}

// Achievements unlocked by Milestones.
var (
	AchievementFirstBlood = Achievement{ID: "first_blood", Name: "First Blood", Reward: 50}
	AchievementBossSlayer = Achievement{ID: "boss_slayer", Name: "Boss Slayer", Reward: 200}
	AchievementSurvivor   = Achievement{ID: "survivor", Name: "Survivor", Reward: 300}
)

// SurvivorSeconds is the play time that unlocks AchievementSurvivor.
const SurvivorSeconds = 300

// Milestones awards medals and achievements from gameplay observations.
// Each reward is granted at most once per game.
type Milestones struct {
	onMedal       func(Medal)
	onAchievement func(Achievement)
	earned        map[string]bool
}

// NewMilestones creates an empty tracker.
func NewMilestones() *Milestones {
	return &Milestones{earned: make(map[string]bool)}
}

// OnMedal registers the medal callback.
func (m *Milestones) OnMedal(f func(Medal)) { m.onMedal = f }

// OnAchievement registers the achievement callback.
func (m *Milestones) OnAchievement(f func(Achievement)) { m.onAchievement = f }

// Reset forgets earned rewards.
func (m *Milestones) Reset() { m.earned = make(map[string]bool) }

// ObserveKills grants rewards for the total kill count.
func (m *Milestones) ObserveKills(kills int) {
	if kills >= 1 {
		m.unlock(AchievementFirstBlood)
	}
	for _, km := range killMedals {
		if kills >= km.kills {
			m.collect(km.medal)
		}
	}
}

// ObserveBoss grants the boss achievement.
func (m *Milestones) ObserveBoss() {
	m.unlock(AchievementBossSlayer)
}

// ObserveSurvival grants the survival achievement once enough time has passed.
func (m *Milestones) ObserveSurvival(seconds float64) {
	if seconds >= SurvivorSeconds {
		m.unlock(AchievementSurvivor)
	}
}

func (m *Milestones) collect(medal Medal) {
	if m.earned[medal.ID] {
		return
	}
	m.earned[medal.ID] = true
	if m.onMedal != nil {
		m.onMedal(medal)
	}
}

func (m *Milestones) unlock(a Achievement) {
	if m.earned[a.ID] {
		return
	}
	m.earned[a.ID] = true
	if m.onAchievement != nil {
		m.onAchievement(a)
	}
}

var _ RewardSource = (*Milestones)(nil)
