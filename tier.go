package habitbank

// Tier is a balance-threshold classification conferring a deposit multiplier.
type Tier struct {
	Name       string  `json:"name"`
	Emoji      string  `json:"emoji"`
	MinBalance int64   `json:"minBalance"`
	Multiplier float64 `json:"multiplier"`
}

// tiers is ranked by ascending MinBalance. Bronze is the base tier: it
// applies even below its own threshold.
var tiers = []Tier{
	{Name: "Bronze", Emoji: "🥉", MinBalance: 100, Multiplier: 1.0},
	{Name: "Silver", Emoji: "🥈", MinBalance: 500, Multiplier: 1.2},
	{Name: "Gold", Emoji: "🥇", MinBalance: 1000, Multiplier: 1.5},
	{Name: "Platinum", Emoji: "💎", MinBalance: 2500, Multiplier: 2.0},
	{Name: "Diamond", Emoji: "💎", MinBalance: 5000, Multiplier: 3.0},
}

// Tiers returns the ranked tier table, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ComputeTier returns the highest tier whose minimum balance is reached.
// It is a pure function of the balance.
func ComputeTier(balance Points) Tier {
	for i := len(tiers) - 1; i >= 0; i-- {
		if balance.GreaterThanOrEqual(P(tiers[i].MinBalance)) {
			return tiers[i]
		}
	}
	return tiers[0]
}
