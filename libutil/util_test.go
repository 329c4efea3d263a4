package libutil

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	id  int
	log *[]int
}

func (r recorder) Delete() {
	*r.log = append(*r.log, r.id)
}

func TestDeleteAllReverseOrder(t *testing.T) {
	var order []int
	objects := []Deleter{recorder{1, &order}, nil, recorder{2, &order}, recorder{3, &order}}
	DeleteAll(objects)
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestHsl2rgb(t *testing.T) {
	assert.True(t, Hsl2rgb(mgl32.Vec3{0, 0, 0.5}).ApproxEqual(mgl32.Vec3{0.5, 0.5, 0.5}))
	assert.True(t, Hsl2rgb(mgl32.Vec3{0, 1, 0.5}).ApproxEqual(mgl32.Vec3{1, 0, 0}))
	assert.True(t, Hsl2rgb(mgl32.Vec3{1. / 3., 1, 0.5}).ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5))
}
