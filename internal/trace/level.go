package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity. Each level admits every scope up to
// and including its ceiling.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelError               // request boundaries
	LevelPhase               // plus stages
	LevelDetail              // plus host calls
	LevelDebug
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// scope ceilings indexed by Level; zero admits nothing
var levelCeiling = []Scope{0, ScopeRequest, ScopeStage, ScopeHost, ScopeHost}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case. The empty string is off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	if i := slices.Index(levelNames, s); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelCeiling) {
		return false
	}
	return scope != 0 && scope <= levelCeiling[l]
}
