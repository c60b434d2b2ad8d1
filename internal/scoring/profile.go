package scoring

import (
	"math"
	"strings"

	"github.com/zamanlabs/medicare/internal/models"
)

const (
	requiredProfileShare = 70.0
	optionalProfileShare = 30.0
)

type ProfileChecklist struct {
	Required []bool `json:"required"`
	Optional []bool `json:"optional"`
}

func BuildProfileChecklist(profile models.Profile) ProfileChecklist {
	return ProfileChecklist{
		Required: []bool{
			strings.TrimSpace(profile.FullName) != "",
			profile.Age > 0,
			strings.TrimSpace(profile.BloodGroup) != "",
		},
		Optional: []bool{
			strings.TrimSpace(profile.Gender) != "",
			profile.Weight > 0,
			profile.Height > 0,
			len(profile.MedicalConditions) > 0,
			len(profile.Allergies) > 0,
		},
	}
}

// ProfileCompletion weighs required fields at 70% and optional fields at 30%.
// The two partial percentages are summed unrounded and rounded once.
func ProfileCompletion(profile models.Profile) int {
	checklist := BuildProfileChecklist(profile)
	required := countTrue(checklist.Required) / float64(len(checklist.Required)) * requiredProfileShare
	optional := countTrue(checklist.Optional) / float64(len(checklist.Optional)) * optionalProfileShare
	return int(math.Round(required + optional))
}

func countTrue(values []bool) float64 {
	count := 0
	for _, value := range values {
		if value {
			count++
		}
	}
	return float64(count)
}
