package game

import "gorm.io/gorm"

// Session is one play session from the main menu until the player quits.
// The combat match and the adventure run are stored as JSON columns; the
// database is memory-resident and dropped on restart.
type Session struct {
	gorm.Model
	Code       string          `json:"code" gorm:"uniqueIndex"`
	Mode       Mode            `json:"mode"`
	Phase      Phase           `json:"phase"`
	Seats      int             `json:"seats"`
	Class      ClassID         `json:"class"`
	Difficulty Difficulty      `json:"difficulty,omitempty"`
	AutoPlay   bool            `json:"auto_play"`
	Message    string          `json:"message,omitempty"`
	Match      *Match          `json:"match,omitempty" gorm:"serializer:json"`
	Adventure  *AdventureState `json:"adventure,omitempty" gorm:"serializer:json"`
	Loot       []LootChoice    `json:"loot,omitempty" gorm:"serializer:json"`
	// Journal collects progression notices (shop, events, loot) outside combat.
	Journal []LogEntry `json:"journal,omitempty" gorm:"serializer:json"`
}

// Note appends a progression notice.
func (s *Session) Note(text string, cat LogCategory) {
	round := 0
	if s.Match != nil {
		round = s.Match.Round
	}
	s.Journal = append(s.Journal, LogEntry{Round: round, Text: text, Category: cat})
}
