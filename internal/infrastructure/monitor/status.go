package monitor

import "time"

// Status is a snapshot of the latest dependency checks.
type Status struct {
	Components map[string]bool `json:"components"`
	LastCheck  time.Time       `json:"last_check"`
}

// Healthy reports whether every registered dependency passed its last check.
func (s Status) Healthy() bool {
	for _, ok := range s.Components {
		if !ok {
			return false
		}
	}
	return true
}

func (s Status) clone() Status {
	out := Status{
		Components: make(map[string]bool, len(s.Components)),
		LastCheck:  s.LastCheck,
	}
	for name, ok := range s.Components {
		out.Components[name] = ok
	}
	return out
}
