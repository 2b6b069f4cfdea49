package habitbank

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Reward is a static catalog entry a family can redeem points against.
type Reward struct {
	ID          string      `json:"id" toml:"id"`
	Name        string      `json:"name" toml:"name"`
	Cost        int64       `json:"cost" toml:"cost"`
	Account     AccountType `json:"accountType" toml:"account"`
	Type        string      `json:"type" toml:"type"`
	Description string      `json:"description" toml:"description"`
}

// Catalog is the reward lookup, keyed by reward id. It is configuration
// data: the engine never mutates it.
type Catalog map[string]Reward

// Reward resolves a catalog entry.
func (c Catalog) Reward(id string) (Reward, error) {
	r, ok := c[id]
	if !ok {
		return Reward{}, fmt.Errorf("%w: %q", ErrRewardNotFound, id)
	}
	return r, nil
}

// DefaultCatalog returns the built-in reward catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		"family_movie_night": {
			ID:          "family_movie_night",
			Name:        "Family Movie Night",
			Cost:        100,
			Account:     Connection,
			Type:        "experience",
			Description: "Pizza, popcorn, and a movie of everyone's choice!",
		},
		"special_outing": {
			ID:          "special_outing",
			Name:        "Special Outing",
			Cost:        200,
			Account:     Energy,
			Type:        "experience",
			Description: "Choose a fun family activity: mini golf, bowling, or ice cream!",
		},
		"weekend_adventure": {
			ID:          "weekend_adventure",
			Name:        "Weekend Adventure",
			Cost:        500,
			Account:     Growth,
			Type:        "experience",
			Description: "Plan a full day adventure: hiking, beach trip, or city exploration!",
		},
	}
}

// LoadCatalog reads a reward catalog from a TOML file with a [[reward]]
// table per entry. Missing account types are rejected.
func LoadCatalog(path string) (Catalog, error) {
	var file struct {
		Rewards []Reward `toml:"reward"`
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("could not read reward catalog %q: %w", path, err)
	}
	catalog := make(Catalog, len(file.Rewards))
	for _, r := range file.Rewards {
		if _, err := ParseAccountType(string(r.Account)); err != nil {
			return nil, fmt.Errorf("reward %q: %w", r.ID, err)
		}
		catalog[r.ID] = r
	}
	return catalog, nil
}

// RedeemedReward is a catalog entry with its redemption metadata, appended
// to the ledger history when a withdrawal succeeds.
type RedeemedReward struct {
	Reward
	RedeemedAt time.Time `json:"redeemedAt"`
	RedeemedBy string    `json:"redeemedBy"`
}

// Unlock is a family-level milestone reached when the combined balance of
// all accounts crosses a threshold.
type Unlock struct {
	Threshold int64  `json:"threshold"`
	ID        string `json:"id"`
	Name      string `json:"name"`
}

// unlocks is the fixed list of cumulative milestones, lowest first.
var unlocks = []Unlock{
	{Threshold: 250, ID: "family_movie_night", Name: "Family Movie Night"},
	{Threshold: 500, ID: "special_outing", Name: "Special Outing"},
	{Threshold: 1000, ID: "weekend_adventure", Name: "Weekend Adventure"},
	{Threshold: 2000, ID: "family_vacation_fund", Name: "Family Vacation Fund Contribution"},
}

// CheckRewardUnlocks returns the milestones newly crossed by the ledger's
// total balance and records them on the ledger, so that a second call on the
// same state returns nothing. Milestones already redeemed also never
// re-trigger.
func CheckRewardUnlocks(l *Ledger) []Unlock {
	total := l.TotalValue()
	var newly []Unlock
	for _, u := range unlocks {
		if l.hasUnlocked(u.ID) || total.LessThan(P(u.Threshold)) {
			continue
		}
		l.Unlocked = append(l.Unlocked, u.ID)
		newly = append(newly, u)
	}
	return newly
}
