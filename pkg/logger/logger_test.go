package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestGlobalLoggerSharesWriter(t *testing.T) {
	// Packages log through the zerolog global; init must have pointed it
	// at the configured console logger.
	if log.Logger.GetLevel() != Log.GetLevel() {
		t.Errorf("global level %v, configured level %v", log.Logger.GetLevel(), Log.GetLevel())
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("debug")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %v, want debug", zerolog.GlobalLevel())
	}
	if log.Logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("zerolog global not re-pointed, level = %v", log.Logger.GetLevel())
	}
}

func TestSetLevelInvalidFallsBackToInfo(t *testing.T) {
	defer SetLevel("info")

	SetLevel("shouting")
	if Log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", Log.GetLevel())
	}
}
