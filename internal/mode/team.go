package mode

// DefaultMaxTeamSize caps each team's roster.
const DefaultMaxTeamSize = 3

// MemberKind identifies who controls a team member.
type MemberKind string

const (
	MemberHuman   MemberKind = "human"
	MemberAIAlly  MemberKind = "ai_ally"
	MemberAIEnemy MemberKind = "ai_enemy"
)

// Member is one fighter on a team.
type Member struct {
	ID        string
	Name      string
	Kind      MemberKind
	Health    int
	MaxHealth int
}

// Team is one side of a team battle.
type Team struct {
	ID      string
	Name    string
	Color   string
	Members []*Member
	Score   int
	Kills   int
}

// Eliminated reports whether the team has no members left.
func (t *Team) Eliminated() bool { return len(t.Members) == 0 }

// Member returns the member with the given id, or nil.
func (t *Team) Member(id string) *Member {
	for _, m := range t.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (t *Team) remove(id string) (*Member, bool) {
	for i, m := range t.Members {
		if m.ID == id {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return m, true
		}
	}
	return nil, false
}

// TeamStats is a read-only snapshot of a team.
type TeamStats struct {
	ID      string
	Name    string
	Color   string
	Members []Member
	Score   int
	Kills   int
}

// Alive returns the number of members still on the team.
func (s TeamStats) Alive() int { return len(s.Members) }

func (t *Team) snapshot() TeamStats {
	members := make([]Member, len(t.Members))
	for i, m := range t.Members {
		members[i] = *m
	}
	return TeamStats{
		ID:      t.ID,
		Name:    t.Name,
		Color:   t.Color,
		Members: members,
		Score:   t.Score,
		Kills:   t.Kills,
	}
}

// TeamworkRating is the coarse tier awarded at the end of a team battle.
type TeamworkRating int

const (
	RatingBronze TeamworkRating = iota
	RatingSilver
	RatingGold
)

// String returns the rating name.
func (r TeamworkRating) String() string {
	switch r {
	case RatingBronze:
		return "Bronze"
	case RatingSilver:
		return "Silver"
	case RatingGold:
		return "Gold"
	default:
		return "Unknown"
	}
}

// RateTeamwork derives a rating from the player team's score lead and kill count.
func RateTeamwork(scoreDiff, kills int) TeamworkRating {
	switch {
	case scoreDiff >= 1000, scoreDiff > 0 && kills >= 15:
		return RatingGold
	case scoreDiff > 0, kills >= 8:
		return RatingSilver
	default:
		return RatingBronze
	}
}
