package domain

import (
	"fmt"
	"testing"
)

func TestHistory_AppendKeepsLastTurns(t *testing.T) {
	var h History
	for i := 0; i < 25; i++ {
		h = h.Append(Turn{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)}, MaxHistoryTurns)
		if len(h) > MaxHistoryTurns {
			t.Fatalf("History grew to %d turns", len(h))
		}
	}

	if len(h) != MaxHistoryTurns {
		t.Fatalf("Expected %d turns, got %d", MaxHistoryTurns, len(h))
	}
	if h[0].Content != "msg-5" {
		t.Errorf("Expected oldest retained 'msg-5', got '%s'", h[0].Content)
	}
	if h[len(h)-1].Content != "msg-24" {
		t.Errorf("Expected newest 'msg-24', got '%s'", h[len(h)-1].Content)
	}
}

func TestHistory_TruncateNoop(t *testing.T) {
	h := History{{Role: RoleUser, Content: "a"}, {Role: RoleAssistant, Content: "b"}}
	if got := h.Truncate(MaxHistoryTurns); len(got) != 2 {
		t.Errorf("Expected 2 turns, got %d", len(got))
	}
}

func TestHistory_CloneIsIndependent(t *testing.T) {
	h := History{{Role: RoleUser, Content: "a"}}
	c := h.Clone()
	c[0].Content = "changed"
	if h[0].Content != "a" {
		t.Error("Expected clone to not share backing array")
	}
}

func TestInboundMessage_ShouldIgnore(t *testing.T) {
	tests := []struct {
		name string
		msg  InboundMessage
		want bool
	}{
		{"private", InboundMessage{From: "ou_1"}, false},
		{"group", InboundMessage{From: "ou_1", IsGroup: true}, true},
		{"from me", InboundMessage{From: "ou_1", FromMe: true}, true},
		{"broadcast", InboundMessage{From: BroadcastSender}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.msg.ShouldIgnore()
			if got != tt.want {
				t.Errorf("ShouldIgnore() = %v, want %v", got, tt.want)
			}
		})
	}
}
