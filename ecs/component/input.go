package component

// Input stores the lead's per-frame intent. MoveX/MoveY form a vector of
// length 0 or 1.
type Input struct {
	MoveX         float64
	MoveY         float64
	AttackPressed bool
}

var InputComponent = NewComponent[Input]()
