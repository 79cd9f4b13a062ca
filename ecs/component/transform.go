package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Pos        cp.Vector
	Scale      float64
	FacingLeft bool
}

var TransformComponent = NewComponent[Transform]()
