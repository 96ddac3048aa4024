package libutil

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Deleter interface {
	Delete()
}

// Releaser deletes registered objects in reverse order of registration.
// Release may be called more than once, only the first call has an effect.
type Releaser struct {
	deleters []Deleter
	released bool
}

func (r *Releaser) Add(d Deleter) {
	if d == nil {
		return
	}
	r.deleters = append(r.deleters, d)
}

func (r *Releaser) AddFunc(fn func()) {
	r.Add(DeleterFunc(fn))
}

func (r *Releaser) Release() {
	if r.released {
		return
	}
	r.released = true
	for i := len(r.deleters) - 1; i >= 0; i-- {
		r.deleters[i].Delete()
	}
	r.deleters = nil
}

func (r *Releaser) Released() bool {
	return r.released
}

type DeleterFunc func()

func (fn DeleterFunc) Delete() {
	fn()
}

// Signed area of the triangle abc projected onto the xy plane.
// Counter-clockwise winding yields a positive result.
func SignedArea2D(a, b, c mgl32.Vec3) float32 {
	ab := b.Vec2().Sub(a.Vec2())
	ac := c.Vec2().Sub(a.Vec2())
	return 0.5 * (ab[0]*ac[1] - ab[1]*ac[0])
}

func Area2D(a, b, c mgl32.Vec3) float32 {
	return math32.Abs(SignedArea2D(a, b, c))
}

func Clamp(v, min, max float32) float32 {
	return math32.Min(math32.Max(v, min), max)
}

func ApproxEqual(a, b, epsilon float32) bool {
	return math32.Abs(a-b) <= epsilon
}
