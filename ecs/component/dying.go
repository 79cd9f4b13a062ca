package component

// Dying marks an enemy whose health reached zero. It no longer takes part in
// combat and is destroyed when Remaining (seconds) runs out.
type Dying struct {
	Remaining float64
}

var DyingComponent = NewComponent[Dying]()
