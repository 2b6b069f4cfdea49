package habitbank

import (
	"encoding/json"
	"testing"
)

func TestPointsSignedString(t *testing.T) {
	testCases := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "-"},
		{value: 12.5, want: "+12.5"},
		{value: -3, want: "-3"},
	}
	for _, tc := range testCases {
		if got := P(tc.value).SignedString(); got != tc.want {
			t.Errorf("P(%v).SignedString() = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestPointsMarshalRoundsToCents(t *testing.T) {
	raw, err := json.Marshal(P(10.456))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "10.46" {
		t.Errorf("Marshal(10.456) = %s, want 10.46", raw)
	}

	var p Points
	if err := json.Unmarshal([]byte("142.5"), &p); err != nil {
		t.Fatal(err)
	}
	if !p.Equal(P(142.5)) {
		t.Errorf("Unmarshal(142.5) = %s", p)
	}
}
