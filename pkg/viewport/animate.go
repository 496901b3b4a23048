package viewport

// Easing maps animation progress in [0, 1] to eased progress in [0, 1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOut accelerates through the first half and decelerates through the
// second.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Animator drives smooth zoom. Animate calls step for each frame with the
// linear progress of that frame; the last call has progress 1.
//
// Controllers are single-threaded: Animate must call step synchronously, on
// the caller's goroutine, before returning.
type Animator interface {
	Animate(frames int, step func(progress float64))
}

// Immediate runs every frame back to back.
type Immediate struct{}

func (Immediate) Animate(frames int, step func(float64)) {
	for i := 1; i <= frames; i++ {
		step(float64(i) / float64(frames))
	}
}
