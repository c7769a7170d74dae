// Package scene holds the checkerboard both engines draw and the camera
// update they apply to it.
package scene

import (
	"math"

	"github.com/oliverbestmann/gl2d/glimpse"
	"github.com/oliverbestmann/gl2d/glm"
)

// Tile is the unit square from (0, 0) to (1, 1), placed into world space by Transform.
type Tile struct {
	Transform glm.Mat3f
	Color     Color
}

// Corners returns the four corners of the tile in world space,
// in the order top left, top right, bottom left, bottom right.
func (t Tile) Corners() [4]glm.Vec2f {
	return [4]glm.Vec2f{
		t.Transform.Transform2(glm.Vec2f{0, 0}),
		t.Transform.Transform2(glm.Vec2f{1, 0}),
		t.Transform.Transform2(glm.Vec2f{0, 1}),
		t.Transform.Transform2(glm.Vec2f{1, 1}),
	}
}

type CheckerboardOptions struct {
	Columns, Rows int

	// edge length of one field in world units
	Size float32

	Even, Odd Color

	// color of the marker in the center of the board
	Marker Color
}

func (opts CheckerboardOptions) withDefaults() CheckerboardOptions {
	if opts.Columns == 0 {
		opts.Columns = 16
	}

	if opts.Rows == 0 {
		opts.Rows = 16
	}

	if opts.Size == 0 {
		opts.Size = 48
	}

	if opts.Even == (Color{}) && opts.Odd == (Color{}) {
		opts.Even = ColorSRGBA(0.93, 0.93, 0.93, 1)
		opts.Odd = ColorSRGBA(0.2, 0.22, 0.25, 1)
		opts.Marker = ColorSRGBA(0.9, 0.3, 0.2, 1)
	}

	return opts
}

// Checkerboard builds the tiles of a checkerboard with its top left corner at
// the world origin. A marker rotated by 45 degrees is placed at the center of the board.
func Checkerboard(opts CheckerboardOptions) []Tile {
	opts = opts.withDefaults()

	tiles := make([]Tile, 0, opts.Columns*opts.Rows+1)

	for y := range opts.Rows {
		for x := range opts.Columns {
			color := opts.Even
			if (x+y)%2 == 1 {
				color = opts.Odd
			}

			tiles = append(tiles, Tile{
				Transform: glm.
					TranslationMat3(float32(x)*opts.Size, float32(y)*opts.Size).
					Scale(opts.Size, opts.Size),
				Color: color,
			})
		}
	}

	cx := float32(opts.Columns) * opts.Size / 2
	cy := float32(opts.Rows) * opts.Size / 2

	tiles = append(tiles, Tile{
		Transform: glm.TranslationMat3(cx, cy).
			Mul(glm.RotationMat3[float32](math.Pi / 4)).
			Scale(opts.Size, opts.Size).
			Translate(-0.5, -0.5),
		Color: opts.Marker,
	})

	return tiles
}

// ApplyInput pans and zooms the camera by the deltas collected in
// the input state and resets them afterward.
func ApplyInput(camera *glm.Camera, input *glimpse.InputState) {
	pan := input.Wheel().MulScalar(-1)
	zoom := 1 - input.Pinch()*0.02

	camera.PanZoom(pan, input.Mouse(), zoom)

	input.ResetDeltas()
}

// ScreenTransform maps world coordinates to pixels of the backing store.
func ScreenTransform(camera *glm.Camera, pixelRatio float32) glm.Mat3f {
	return glm.ScaleMat3(pixelRatio, pixelRatio).Mul(camera.Transform())
}
