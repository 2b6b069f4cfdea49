package habitbank

import "testing"

func TestComputeTier(t *testing.T) {
	testCases := []struct {
		balance        int64
		wantName       string
		wantMultiplier float64
	}{
		{balance: 0, wantName: "Bronze", wantMultiplier: 1.0},
		{balance: 99, wantName: "Bronze", wantMultiplier: 1.0},
		{balance: 100, wantName: "Bronze", wantMultiplier: 1.0},
		{balance: 499, wantName: "Bronze", wantMultiplier: 1.0},
		{balance: 500, wantName: "Silver", wantMultiplier: 1.2},
		{balance: 999, wantName: "Silver", wantMultiplier: 1.2},
		{balance: 1000, wantName: "Gold", wantMultiplier: 1.5},
		{balance: 2500, wantName: "Platinum", wantMultiplier: 2.0},
		{balance: 4999, wantName: "Platinum", wantMultiplier: 2.0},
		{balance: 5000, wantName: "Diamond", wantMultiplier: 3.0},
		{balance: 1_000_000, wantName: "Diamond", wantMultiplier: 3.0},
	}

	for _, tc := range testCases {
		tier := ComputeTier(P(tc.balance))
		if tier.Name != tc.wantName {
			t.Errorf("ComputeTier(%d).Name = %q, want %q", tc.balance, tier.Name, tc.wantName)
		}
		if tier.Multiplier != tc.wantMultiplier {
			t.Errorf("ComputeTier(%d).Multiplier = %v, want %v", tc.balance, tier.Multiplier, tc.wantMultiplier)
		}
	}
}

func TestTiersIsACopy(t *testing.T) {
	a := Tiers()
	a[0].Multiplier = 99
	if got := Tiers()[0].Multiplier; got == 99 {
		t.Fatal("Tiers() exposes the internal table")
	}
}
