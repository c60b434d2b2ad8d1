package scoring

import (
	"math"

	"github.com/zamanlabs/medicare/internal/models"
)

const (
	mildSeverityCeiling     = 3
	moderateSeverityCeiling = 7
	moderateImpactFactor    = 1.5
	severeImpactFactor      = 2.0
	impactDeductionFactor   = 5.0
)

// SymptomImpact maps a 1-10 severity onto its weighted impact.
// Severities above 7 weigh double so a single severe entry dominates
// several mild ones.
func SymptomImpact(severity int) float64 {
	value := float64(severity)
	switch {
	case severity <= mildSeverityCeiling:
		return value
	case severity <= moderateSeverityCeiling:
		return value * moderateImpactFactor
	default:
		return value * severeImpactFactor
	}
}

// SymptomScore returns 100 for no symptoms and decreases with the mean impact.
// Severity is validated by the symptom store, not here.
func SymptomScore(symptoms []models.Symptom) float64 {
	if len(symptoms) == 0 {
		return MaxScore
	}

	total := 0.0
	for _, symptom := range symptoms {
		total += SymptomImpact(symptom.Severity)
	}
	averageImpact := total / float64(len(symptoms))

	deduction := math.Min(MaxScore, averageImpact*impactDeductionFactor)
	return math.Max(0, MaxScore-deduction)
}
