package bot

import (
	"fmt"

	"fnmonopoly/internal/domain"
)

// Level selects how a bot plays.
type Level string

const (
	LevelCasual  Level = "casual"
	LevelTryhard Level = "tryhard"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level Level) (Brain, error) {
	switch level {
	case LevelCasual, "":
		return &CasualBrain{}, nil
	case LevelTryhard:
		return &TryhardBrain{Board: &domain.StandardBoard}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
