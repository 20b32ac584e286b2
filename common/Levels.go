package common

import (
	"strconv"
	"strings"
)

// CopyLevels returns a new slice with the same contents.
func CopyLevels(levels []int) []int {
	out := make([]int, len(levels))
	copy(out, levels)
	return out
}

// ReachedCap reports whether any player is at or above cap.
func ReachedCap(levels []int, cap int) bool {
	for _, level := range levels {
		if level >= cap {
			return true
		}
	}
	return false
}

// LevelsKey serialises a level vector into a comparable state descriptor,
// e.g. [3 0 1] -> "3,0,1".
func LevelsKey(levels []int) string {
	var sb strings.Builder
	for i, level := range levels {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(level))
	}
	return sb.String()
}

// SkillAt returns skills[i], treating a missing skill vector as all zeros.
func SkillAt(skills []float64, i int) float64 {
	if i < 0 || i >= len(skills) {
		return 0
	}
	return skills[i]
}
