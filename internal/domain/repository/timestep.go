package repository

// Timestep is the candle resolution served by the timeseries endpoint.
type Timestep string

const (
	TS5m  Timestep = "5m"
	TS1h  Timestep = "1h"
	TS6h  Timestep = "6h"
	TS24h Timestep = "24h"
)

// IsValidTimestep returns true if ts is a supported timestep.
func IsValidTimestep(ts Timestep) bool {
	switch ts {
	case TS5m, TS1h, TS6h, TS24h:
		return true
	default:
		return false
	}
}

// DefaultTimestep returns the default timestep.
func DefaultTimestep() Timestep { return TS5m }

// NormalizeTimestep converts raw string to a valid timestep (or default).
// "1d" is accepted as an alias of "24h".
func NormalizeTimestep(s string) Timestep {
	if s == "" {
		return DefaultTimestep()
	}
	if s == "1d" {
		return TS24h
	}
	ts := Timestep(s)
	if IsValidTimestep(ts) {
		return ts
	}
	return DefaultTimestep()
}
