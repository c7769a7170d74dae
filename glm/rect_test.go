package glm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Vec2f{10, 2}, Vec2f{4, 8})

	assert.Equal(t, Vec2f{4, 2}, r.Min)
	assert.Equal(t, Vec2f{10, 8}, r.Max)
	assert.Equal(t, float32(6), r.Width())
	assert.Equal(t, float32(6), r.Height())
}

func TestRectLocal(t *testing.T) {
	r := RectFromSize(Vec2f{24, 24}, Vec2f{1000, 1000})

	assert.Equal(t, Vec2f{76, 26}, r.Local(Vec2f{100, 50}))
}
