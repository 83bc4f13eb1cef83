package domain

import "time"

// KeyPrefix namespaces every key the service writes to shared storage.
const KeyPrefix = "showcase:"

// RankingConfig holds the ranking constants shared by both demos.
type RankingConfig struct {
	TopK int
}

// DefaultRankingConfig returns the ranking settings used by the demo widgets.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		TopK: 3,
	}
}

// DefaultStepDelay is the pause between two staged-progress steps.
const DefaultStepDelay = 800 * time.Millisecond
