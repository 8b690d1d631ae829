package tier

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		wpm  float64
		want Tier
	}{
		{0, Warrior},
		{84, Warrior},
		{85, Bronze},
		{109, Bronze},
		{110, Gold},
		{139, Gold},
		{140, Diamond},
		{240, Diamond},
	}
	for _, tc := range cases {
		if got := Classify(tc.wpm); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.wpm, got, tc.want)
		}
	}
}

func TestTierString(t *testing.T) {
	cases := map[Tier]string{
		Warrior: "Warrior",
		Bronze:  "Bronze",
		Gold:    "Gold",
		Diamond: "Diamond",
	}
	for tier, want := range cases {
		if got := tier.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tier, got, want)
		}
	}
}
