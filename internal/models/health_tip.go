package models

import "time"

const (
	HealthTipSourceGenerated = "generated"
	HealthTipSourceFallback  = "fallback"
)

type HealthTip struct {
	Text        string    `json:"text"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}
