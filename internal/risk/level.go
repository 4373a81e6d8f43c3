package risk

import "fmt"

// Level is the categorical risk band derived from a score.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

const (
	moderateAbove = 40
	highAbove     = 70
)

// Classify maps a score onto its band. Boundary values belong to the lower band.
func Classify(score int) Level {
	switch {
	case score > highAbove:
		return LevelHigh
	case score > moderateAbove:
		return LevelModerate
	default:
		return LevelLow
	}
}

// ParseLevel reconstructs a Level from its string form.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelLow, LevelModerate, LevelHigh:
		return Level(s), nil
	default:
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
}

func (l Level) String() string { return string(l) }
