package game

// NotExecuted marks the sabotage count of an attempt whose team was voted
// down, so the mission never ran.
const NotExecuted = -1

// Attempt records one proposal+vote cycle, and the mission result when the
// team was approved.
type Attempt struct {
	Mission  int // 1-based mission index
	Try      int // 1-based attempt index within the mission
	Leader   Player
	Team     []Player
	Votes    []bool // in roster order
	Approved bool
	Sabotage int // sabotage count, or NotExecuted
}

// Outcome is the structured result of one completed game. It carries the
// full round history so the tournament can fold per-player events without
// the engine knowing anything about statistics.
type Outcome struct {
	Winner         Role
	ResistanceWins int
	SpyWins        int
	Attempts       []Attempt
	Spies          []Player // revealed only here, at game end
	Faults         []int    // protocol faults per seat, in roster order
}
