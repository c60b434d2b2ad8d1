// Package scoring derives the wellness score shown on the dashboard from
// already-loaded symptom, medication and profile data. Nothing here performs
// I/O; every function is deterministic over its inputs.
package scoring

import (
	"math"

	"github.com/zamanlabs/medicare/internal/models"
)

const (
	MaxScore = 100

	SymptomWeight        = 0.5
	MedicationWeight     = 0.3
	DoctorFeedbackWeight = 0.2

	MaxDoctorFeedback = 20.0
	// DefaultDoctorFeedback stands in until a clinician feedback source exists.
	DefaultDoctorFeedback = 16.0
)

const (
	ComponentSymptoms       = "symptoms"
	ComponentMedication     = "medication"
	ComponentDoctorFeedback = "doctorFeedback"
)

const (
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneError   = "error"
)

type ComponentScore struct {
	Value       int     `json:"value"`
	Weight      float64 `json:"weight"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

type Status struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

type WellnessScore struct {
	Value           int                       `json:"value"`
	Status          Status                    `json:"status"`
	ComponentScores map[string]ComponentScore `json:"component_scores"`
}

type Inputs struct {
	Symptoms       []models.Symptom
	Medications    []models.Medication
	DoctorFeedback float64
}

func NormalizeDoctorFeedback(score float64) float64 {
	return math.Min(math.Max(score, 0), MaxDoctorFeedback) * (MaxScore / MaxDoctorFeedback)
}

// Wellness combines the component scores with fixed weights. doctorFeedback
// is on a 0-20 scale and is clamped before normalization.
func Wellness(symptomScore float64, medicationScore int, doctorFeedback float64) WellnessScore {
	feedback := NormalizeDoctorFeedback(doctorFeedback)
	weighted := symptomScore*SymptomWeight +
		float64(medicationScore)*MedicationWeight +
		feedback*DoctorFeedbackWeight
	value := int(math.Round(weighted))

	return WellnessScore{
		Value:  value,
		Status: Classify(value),
		ComponentScores: map[string]ComponentScore{
			ComponentSymptoms: {
				Value:       int(math.Round(symptomScore)),
				Weight:      SymptomWeight,
				Label:       "Symptoms",
				Description: "Based on the severity of logged symptoms",
			},
			ComponentMedication: {
				Value:       medicationScore,
				Weight:      MedicationWeight,
				Label:       "Medication adherence",
				Description: "Share of medications marked as taken",
			},
			ComponentDoctorFeedback: {
				Value:       int(math.Round(feedback)),
				Weight:      DoctorFeedbackWeight,
				Label:       "Doctor feedback",
				Description: "Latest clinician assessment",
			},
		},
	}
}

func Compute(inputs Inputs) WellnessScore {
	return Wellness(SymptomScore(inputs.Symptoms), AdherenceScore(inputs.Medications), inputs.DoctorFeedback)
}

func Classify(value int) Status {
	switch {
	case value >= 80:
		return Status{Label: "Excellent condition", Tone: ToneSuccess}
	case value >= 60:
		return Status{Label: "Good condition", Tone: ToneSuccess}
	case value >= 40:
		return Status{Label: "Fair condition", Tone: ToneWarning}
	default:
		return Status{Label: "Needs attention", Tone: ToneError}
	}
}
