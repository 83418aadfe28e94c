package game

// Rect is an axis-aligned rectangle in logical pixels. X/Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge do not intersect, and empty rectangles never do.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func (r *Rect) Move(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

func (r *Rect) SetRight(x float64)   { r.X = x - r.W }
func (r *Rect) SetBottom(y float64)  { r.Y = y - r.H }
func (r *Rect) SetCenterX(x float64) { r.X = x - r.W/2 }
func (r *Rect) SetCenterY(y float64) { r.Y = y - r.H/2 }

// centered returns a w x h rectangle centred on (cx, cy).
func centered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
