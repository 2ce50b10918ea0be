package domain

import "strings"

// ReplyKind identifies which branch produced a reply
type ReplyKind string

const (
	ReplyCustomAway ReplyKind = "custom_away"
	ReplyGreeting   ReplyKind = "greeting"
	ReplyGenerated  ReplyKind = "generated"
)

// Decision is the outcome of reply selection
type Decision struct {
	Kind  ReplyKind
	Emoji string
	Text  string
}

// Time-of-day emojis
const (
	EmojiMorning   = "🌅"
	EmojiAfternoon = "☀️"
	EmojiEvening   = "🌆"
	EmojiNight     = "🌙"
)

// TimeEmoji maps a local hour to its time-of-day emoji
func TimeEmoji(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return EmojiMorning
	case hour >= 12 && hour < 18:
		return EmojiAfternoon
	case hour >= 18 && hour < 22:
		return EmojiEvening
	default:
		return EmojiNight
	}
}

// DefaultGreetingWords are the greeting prefixes answered without generation
var DefaultGreetingWords = []string{"hello", "hi", "hey", "hii", "helo", "hola", "namaste"}

// IsGreeting checks if text is, or starts with, a greeting word followed by a space
func IsGreeting(text string, words []string) bool {
	lower := strings.TrimSpace(strings.ToLower(text))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		if lower == w || strings.HasPrefix(lower, w+" ") {
			return true
		}
	}
	return false
}
