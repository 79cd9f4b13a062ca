package common

// ScreenWidth and ScreenHeight are the logical resolution hosts lay out to.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Approach moves current toward target by at most step.
func Approach(current, target, step float32) float32 {
	if current < target {
		if current+step > target {
			return target
		}
		return current + step
	}
	if current-step < target {
		return target
	}
	return current - step
}
