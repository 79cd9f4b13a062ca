package component

// AI holds the chase and contact tuning of one enemy, resolved from its role
// in the scene configuration.
type AI struct {
	AggroRange  float64
	MinDistance float64
	SpeedFactor float64

	MeleeReachBonus float64
	MeleeDamage     int

	ContactRadius float64
	ContactChance float64
	ContactDamage int
}

var AIComponent = NewComponent[AI]()
