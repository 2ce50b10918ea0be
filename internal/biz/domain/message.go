package domain

import (
	"strings"
	"time"
)

// BroadcastSender is the status/broadcast pseudo-address; messages from it are never answered.
const BroadcastSender = "status@broadcast"

// anonymousIDMarker marks sender ids that hide the real account behind an opaque alias
const anonymousIDMarker = "@lid"

// InboundMessage represents a message event delivered by the transport
type InboundMessage struct {
	ID         string
	ChatID     string
	From       string // Sender ID
	Body       string
	FromMe     bool // Sent by the account owner (or the bot on its behalf)
	IsGroup    bool
	ReceivedAt time.Time
}

// IsBroadcast checks if the message comes from the status pseudo-address
func (m *InboundMessage) IsBroadcast() bool {
	return m.From == BroadcastSender
}

// ShouldIgnore reports whether the message must be dropped before any state is touched
func (m *InboundMessage) ShouldIgnore() (bool, string) {
	switch {
	case m.IsGroup:
		return true, "group chat"
	case m.FromMe:
		return true, "own message"
	case m.IsBroadcast():
		return true, "status broadcast"
	}
	return false, ""
}

// IsAnonymousSender checks if the sender id is an anonymized alias
func IsAnonymousSender(sender string) bool {
	return strings.Contains(sender, anonymousIDMarker)
}
