package domain

import "strings"

// VIPList is a set of sender substrings treated as trusted contacts
type VIPList []string

// ParseVIPList parses one entry per line, ignoring blank lines
func ParseVIPList(text string) VIPList {
	var list VIPList
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			list = append(list, line)
		}
	}
	return list
}

// Matches checks if any entry is a substring of the sender ID
func (l VIPList) Matches(sender string) bool {
	for _, vip := range l {
		if strings.Contains(sender, vip) {
			return true
		}
	}
	return false
}

// String renders the list in its file format
func (l VIPList) String() string {
	if len(l) == 0 {
		return ""
	}
	return strings.Join(l, "\n") + "\n"
}
