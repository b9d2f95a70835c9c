package game

import (
	"errors"
	"fmt"
)

// ErrUnknownRosterSize is returned when no rules-table entry exists for the
// requested number of players.
var ErrUnknownRosterSize = errors.New("no rules for roster size")

const (
	// NumMissions is the number of missions in a full game.
	NumMissions = 5
	// MissionsToWin is how many missions a side must take to win outright.
	MissionsToWin = 3
	// MaxAttempts is the proposal limit per mission; exhausting it hands the
	// game to the spies without the mission being executed.
	MaxAttempts = 5
)

// Mission describes one mission slot: how many players the leader must put
// on the team and how many sabotages it takes to fail it.
type Mission struct {
	TeamSize          int
	SabotageThreshold int
}

// Rules parameterizes a game for a fixed roster size.
type Rules struct {
	RosterSize int
	SpyCount   int
	Missions   [NumMissions]Mission
}

// the standard tables, indexed by roster size
var teamSizes = map[int][NumMissions]int{
	5:  {2, 3, 2, 3, 3},
	6:  {2, 3, 4, 3, 4},
	7:  {2, 3, 3, 4, 4},
	8:  {3, 4, 4, 5, 5},
	9:  {3, 4, 4, 5, 5},
	10: {3, 4, 4, 5, 5},
}

var spyCounts = map[int]int{
	5:  2,
	6:  2,
	7:  3,
	8:  3,
	9:  3,
	10: 4,
}

// StandardRules returns the rules for the given roster size. Sizes outside
// the standard table are a configuration fault, reported before any agent
// is invoked.
func StandardRules(rosterSize int) (Rules, error) {
	sizes, ok := teamSizes[rosterSize]
	if !ok {
		return Rules{}, fmt.Errorf("%w: %d players", ErrUnknownRosterSize, rosterSize)
	}

	rules := Rules{
		RosterSize: rosterSize,
		SpyCount:   spyCounts[rosterSize],
	}
	for i, size := range sizes {
		threshold := 1
		// Mission 4 needs two saboteurs in games of seven or more.
		if i == 3 && rosterSize >= 7 {
			threshold = 2
		}
		rules.Missions[i] = Mission{TeamSize: size, SabotageThreshold: threshold}
	}
	return rules, nil
}
