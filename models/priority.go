package models

// PriorityLevel is the coarse bucket derived from a priority score.
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "HIGH"
	PriorityNormal PriorityLevel = "NORMAL"
	PriorityLow    PriorityLevel = "LOW"
)

// Rank orders levels for threshold comparisons: HIGH > NORMAL > LOW.
func (l PriorityLevel) Rank() int {
	switch l {
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

// Valid reports whether l is one of the known levels.
func (l PriorityLevel) Valid() bool {
	switch l {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// LevelForScore maps a 0–100 score to its level bucket.
func LevelForScore(score int) PriorityLevel {
	switch {
	case score >= 70:
		return PriorityHigh
	case score >= 20:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// Priority is the assigner's verdict for a queue item: a deterministic
// score, its level bucket, and a human-readable reason listing the
// contributing factors.
type Priority struct {
	Score  int           `json:"score"`
	Level  PriorityLevel `json:"level"`
	Reason string        `json:"reason"`
}
