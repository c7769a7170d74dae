package glm

type Rect2[T numeric] struct {
	Min Vec2[T]
	Max Vec2[T]
}

func RectFromSize[T numeric](pos Vec2[T], size Vec2[T]) Rect2[T] {
	return RectFromPoints(pos, pos.Add(size))
}

func RectFromPoints[T numeric](a, b Vec2[T]) Rect2[T] {
	return Rect2[T]{
		Min: Vec2[T]{
			min(a[0], b[0]),
			min(a[1], b[1]),
		},
		Max: Vec2[T]{
			max(a[0], b[0]),
			max(a[1], b[1]),
		},
	}
}

func (r Rect2[T]) Size() Vec2[T] {
	return r.Max.Sub(r.Min)
}

func (r Rect2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rect2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

// Local converts a point into the coordinate space of the rectangle,
// with the origin at the rectangles Min corner.
func (r Rect2[T]) Local(point Vec2[T]) Vec2[T] {
	return point.Sub(r.Min)
}

func (r Rect2[T]) XYWH() (T, T, T, T) {
	x, y := r.Min.XY()
	w, h := r.Size().XY()
	return x, y, w, h
}
