package domain

import "time"

// MessageStats holds running totals of accepted messages
type MessageStats struct {
	TotalMessages int        `json:"totalMessages"`
	StartDate     time.Time  `json:"startDate"`
	LastMessage   *time.Time `json:"lastMessage,omitempty"`
}

// NewMessageStats creates zeroed stats starting at now
func NewMessageStats(now time.Time) MessageStats {
	return MessageStats{StartDate: now}
}

// Record counts one accepted message
func (s *MessageStats) Record(now time.Time) {
	s.TotalMessages++
	t := now
	s.LastMessage = &t
}
