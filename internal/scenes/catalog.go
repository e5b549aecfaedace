// Package scenes holds the fixed catalog of roleplay scenarios offered per
// proficiency level.
package scenes

import "strings"

// Level names the three supported proficiency levels.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels returns the catalog keys in display order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// catalog maps each level to its fixed scenario prompts. Loaded once,
// immutable thereafter.
var catalog = map[Level][]string{
	LevelBeginner: {
		"You're at a market buying fruit.",
		"You're greeting a neighbor in your new town.",
		"You're asking for directions to a park.",
	},
	LevelIntermediate: {
		"You're ordering a meal at a restaurant.",
		"You're shopping for clothes in a store.",
		"You're booking a hotel room over the phone.",
	},
	LevelAdvanced: {
		"You're negotiating a business deal.",
		"You're discussing a news article with a friend.",
		"You're giving a presentation at work.",
	},
}

// ScenesFor returns the scenario list for a level. The lookup is
// case-insensitive; unknown levels fall back to the Beginner list rather
// than erroring, so a stale or garbled level can never strand the session.
func ScenesFor(level string) []string {
	for key, list := range catalog {
		if strings.EqualFold(string(key), level) {
			return copyOf(list)
		}
	}
	return copyOf(catalog[LevelBeginner])
}

// copyOf shields the catalog from caller mutation.
func copyOf(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
