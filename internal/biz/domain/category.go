package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Category is the bucket a message is filed under
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategorySpam     Category = "spam"
	CategoryUnknown  Category = "unknown"
)

// AllCategories lists the categories in report order
var AllCategories = []Category{CategoryWork, CategoryPersonal, CategorySpam, CategoryUnknown}

// MaxCategoryEntries is the number of entries retained per category
const MaxCategoryEntries = 100

// ParseCategory validates a category name
func ParseCategory(name string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Keyword is the topic detected in a message; empty means none
type Keyword string

const (
	KeywordNone    Keyword = ""
	KeywordUrgent  Keyword = "urgent"
	KeywordMeeting Keyword = "meeting"
	KeywordWork    Keyword = "work"
)

// MarshalJSON encodes an empty keyword as null
func (k Keyword) MarshalJSON() ([]byte, error) {
	if k == KeywordNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(k))
}

// keywordSets is checked in order; the first set with a hit wins
var keywordSets = []struct {
	keyword Keyword
	terms   []string
}{
	{KeywordUrgent, []string{"urgent", "emergency", "important"}},
	{KeywordMeeting, []string{"meeting", "call", "schedule"}},
	{KeywordWork, []string{"project", "work", "deadline"}},
}

// DetectKeyword scans text case-insensitively for topic terms
func DetectKeyword(text string) Keyword {
	lower := strings.ToLower(text)
	for _, set := range keywordSets {
		for _, term := range set.terms {
			if strings.Contains(lower, term) {
				return set.keyword
			}
		}
	}
	return KeywordNone
}

// Categorize applies the category rules to a detected keyword and sender
func Categorize(keyword Keyword, sender string, isVIP bool) Category {
	switch {
	case keyword == KeywordWork || keyword == KeywordMeeting:
		return CategoryWork
	case isVIP:
		return CategoryPersonal
	case IsAnonymousSender(sender):
		return CategoryUnknown
	default:
		return CategoryUnknown
	}
}

// CategoryEntry represents one categorized message
type CategoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Keyword   Keyword   `json:"keyword"`
}

// CategoryLog maps each category to its bounded entry list
type CategoryLog map[Category][]CategoryEntry

// NewCategoryLog creates a log with every category present
func NewCategoryLog() CategoryLog {
	log := make(CategoryLog, len(AllCategories))
	for _, c := range AllCategories {
		log[c] = []CategoryEntry{}
	}
	return log
}

// Normalize makes sure every known category has a non-nil list
func (l CategoryLog) Normalize() CategoryLog {
	if l == nil {
		return NewCategoryLog()
	}
	for _, c := range AllCategories {
		if l[c] == nil {
			l[c] = []CategoryEntry{}
		}
	}
	return l
}

// Add appends an entry and trims the category to MaxCategoryEntries
func (l CategoryLog) Add(c Category, entry CategoryEntry) {
	entries := append(l[c], entry)
	if len(entries) > MaxCategoryEntries {
		trimmed := make([]CategoryEntry, MaxCategoryEntries)
		copy(trimmed, entries[len(entries)-MaxCategoryEntries:])
		entries = trimmed
	}
	l[c] = entries
}

// Recent returns up to n most recent entries of a category
func (l CategoryLog) Recent(c Category, n int) []CategoryEntry {
	entries := l[c]
	if n >= 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	out := make([]CategoryEntry, len(entries))
	copy(out, entries)
	return out
}
