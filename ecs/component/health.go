package component

// Health is kept inside [0, Max] by the damage helpers.
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
