package domain

// Schedule represents the hours during which auto-reply is active
type Schedule struct {
	Enabled   bool `json:"enabled"`
	StartHour int  `json:"startHour"` // 0-23, inclusive
	EndHour   int  `json:"endHour"`   // 0-23, exclusive
}

// DefaultSchedule is used when nothing is persisted
func DefaultSchedule() Schedule {
	return Schedule{Enabled: false, StartHour: 9, EndHour: 21}
}

// Valid checks the hour bounds
func (s Schedule) Valid() bool {
	return s.StartHour >= 0 && s.StartHour < 24 && s.EndHour >= 0 && s.EndHour < 24
}

// IsActive checks whether auto-reply is active at the given local hour.
// A window with StartHour > EndHour wraps past midnight.
func (s Schedule) IsActive(hour int) bool {
	if !s.Enabled {
		return true
	}
	if s.StartHour == s.EndHour {
		return false
	}
	if s.StartHour < s.EndHour {
		return hour >= s.StartHour && hour < s.EndHour
	}
	return hour >= s.StartHour || hour < s.EndHour
}
