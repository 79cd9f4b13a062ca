package component

// Role decides who drives an actor (input or AI) and which tuning applies.
type Role int

const (
	RolePlayerLead Role = iota
	RolePlayerCompanion
	RoleMinion
	RoleBoss
)

func (r Role) String() string {
	switch r {
	case RolePlayerLead:
		return "lead"
	case RolePlayerCompanion:
		return "companion"
	case RoleMinion:
		return "minion"
	case RoleBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether the role is AI controlled.
func (r Role) IsEnemy() bool {
	return r == RoleMinion || r == RoleBoss
}

type Actor struct {
	Role   Role
	Sprite string
	Name   string
}

var ActorComponent = NewComponent[Actor]()
