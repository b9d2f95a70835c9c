package game

// Role is the hidden allegiance assigned to a player for one game.
type Role int

const (
	Resistance Role = iota
	Spy
)

func (r Role) String() string {
	switch r {
	case Resistance:
		return "Resistance"
	case Spy:
		return "Spy"
	default:
		return "Unknown"
	}
}

// Player is the public identity of one seat at the table. Roles are tracked
// by the engine and never stored on the Player value, so handing a Player to
// an agent cannot leak an allegiance.
type Player struct {
	Index int
	Name  string
}

func (p Player) String() string {
	return p.Name
}

// Contains reports whether player p occupies one of the given seats.
func Contains(team []Player, p Player) bool {
	for _, member := range team {
		if member.Index == p.Index {
			return true
		}
	}
	return false
}
