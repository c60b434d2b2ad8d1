package scoring

import (
	"math"

	"github.com/zamanlabs/medicare/internal/models"
)

func TakenCount(medications []models.Medication) int {
	taken := 0
	for _, medication := range medications {
		if medication.IsTaken {
			taken++
		}
	}
	return taken
}

// AdherenceScore is the rounded percentage of medications marked as taken.
// No prescribed medications counts as full adherence.
func AdherenceScore(medications []models.Medication) int {
	if len(medications) == 0 {
		return MaxScore
	}
	ratio := float64(TakenCount(medications)) / float64(len(medications))
	return int(math.Round(ratio * MaxScore))
}
