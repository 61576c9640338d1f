package repository

import "testing"

func TestNormalizeTimestep(t *testing.T) {
	cases := map[string]Timestep{
		"":    TS5m,
		"5m":  TS5m,
		"1h":  TS1h,
		"6h":  TS6h,
		"24h": TS24h,
		"1d":  TS24h,
		"2m":  TS5m,
	}
	for in, want := range cases {
		if got := NormalizeTimestep(in); got != want {
			t.Errorf("NormalizeTimestep(%q) = %q, want %q", in, got, want)
		}
	}
}
