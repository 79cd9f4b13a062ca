package component

// Cooldown blocks the lead's melee swing while Remaining (seconds) is above
// zero. The cooldown system removes it once it runs out.
type Cooldown struct {
	Remaining float64
}

var CooldownComponent = NewComponent[Cooldown]()
