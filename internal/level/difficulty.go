package level

import "strings"

// Difficulty is a beatmap difficulty.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	Expert
	ExpertPlus
)

// DifficultyCount is the total number of difficulties.
const DifficultyCount = 5

var difficultyNames = [DifficultyCount]string{"Easy", "Normal", "Hard", "Expert", "ExpertPlus"}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= DifficultyCount {
		return "Unknown"
	}
	return difficultyNames[d]
}

// ParseDifficulty parses a difficulty name as written in level info files.
// Matching is case-insensitive and accepts "Expert+" for ExpertPlus.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Expert+") {
		return ExpertPlus, true
	}
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), true
		}
	}
	return 0, false
}

// DifficultySet is a bitset of difficulties.
type DifficultySet uint8

// Has reports whether d is in the set.
func (s DifficultySet) Has(d Difficulty) bool {
	return s&(1<<uint(d)) != 0
}

// With returns the set with d added.
func (s DifficultySet) With(d Difficulty) DifficultySet {
	return s | 1<<uint(d)
}

// List returns the difficulties in the set from easiest to hardest.
func (s DifficultySet) List() []Difficulty {
	var out []Difficulty
	for d := Easy; d <= ExpertPlus; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s DifficultySet) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}
