// File: internal/domain/character.go
package domain

import (
	"errors"
	"strings"
)

// DefaultVoice is used when a character has no configured voice.
const DefaultVoice = "en-GB-Neural2-A"

// Voices is the fixed set of TTS voice identifiers a character may use.
// The naming convention encodes the accent (language code prefix) and the
// speaker (trailing letter); both are parsed elsewhere for synthesis.
var Voices = []string{
	"en-GB-Neural2-A", // British female, clear
	"en-GB-Neural2-C", // British female, warm
	"en-GB-Neural2-F", // British female, young
	"en-GB-Neural2-B", // British male, deep
	"en-GB-Neural2-D", // British male, authoritative
	"en-US-Neural2-A", // American female, clear
	"en-US-Neural2-C", // American female, warm
	"en-US-Neural2-D", // American male, deep
	"en-US-Neural2-J", // American male, casual
}

// IsValidVoice reports whether name belongs to the voice enumeration.
func IsValidVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}

// Character is a persona from a Book that users can chat with.
type Character struct {
	ID                uint   `json:"id" gorm:"primarykey"`
	BookID            uint   `json:"book_id" gorm:"not null;index"`
	Book              Book   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name              string `json:"name" gorm:"not null"`
	Description       string `json:"description"`
	PersonalityTraits string `json:"personality_traits"`
	AvatarPath        string `json:"avatar,omitempty"`
	// Voice must be one of Voices; empty falls back to DefaultVoice at
	// synthesis time.
	Voice string `json:"voice"`
}

func (c *Character) IsValid() error {
	if c.BookID == 0 {
		return errors.New("character must belong to a book")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("character name is required")
	}
	if c.Voice != "" && !IsValidVoice(c.Voice) {
		return errors.New("character voice is not a recognized voice identifier")
	}
	return nil
}
