package component

// Decoration is a static background sprite: ground tiles, path tiles, trees,
// rocks and embers. It has no runtime behaviour.
type Decoration struct {
	Sprite string
	Scale  float64
	Layer  int
}

var DecorationComponent = NewComponent[Decoration]()
