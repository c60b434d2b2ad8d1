package scoring

import (
	"testing"

	"github.com/zamanlabs/medicare/internal/models"
)

func medicationsWithTaken(flags ...bool) []models.Medication {
	medications := make([]models.Medication, 0, len(flags))
	for index, taken := range flags {
		medications = append(medications, models.Medication{
			ID:      uint(index + 1),
			Name:    "Metformin",
			IsTaken: taken,
		})
	}
	return medications
}

func TestAdherenceScore(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  int
	}{
		{name: "no medications", flags: nil, want: 100},
		{name: "all taken", flags: []bool{true, true, true}, want: 100},
		{name: "none taken", flags: []bool{false, false}, want: 0},
		{name: "one of three", flags: []bool{true, false, false}, want: 33},
		{name: "two of three", flags: []bool{true, true, false}, want: 67},
		{name: "half", flags: []bool{true, false}, want: 50},
		{name: "one of eight rounds half up", flags: []bool{true, false, false, false, false, false, false, false}, want: 13},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := AdherenceScore(medicationsWithTaken(testCase.flags...)); got != testCase.want {
				t.Fatalf("AdherenceScore(%v) = %d, want %d", testCase.flags, got, testCase.want)
			}
		})
	}
}

func TestTakenCount(t *testing.T) {
	if got := TakenCount(medicationsWithTaken(true, false, true)); got != 2 {
		t.Fatalf("TakenCount() = %d, want 2", got)
	}
}
