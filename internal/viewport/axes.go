package viewport

import "bookscatter/internal/scale"

// Tick is one grid line: its data value and canvas position.
type Tick struct {
	Value float64
	Pos   float64
}

// Axes is the grid for the current transform. The axis lines cross at the
// centre of the canvas.
type Axes struct {
	X, Y   []Tick
	XAxisY float64
	YAxisX float64
}

// Rescaled composes the transform with the base mappers.
func (c *Controller) Rescaled(baseX, baseY scale.Linear) (scale.Linear, scale.Linear) {
	return c.t.RescaleX(baseX), c.t.RescaleY(baseY)
}

// Axes returns tick values and positions of the rescaled mappers.
func (c *Controller) Axes(baseX, baseY scale.Linear) Axes {
	x, y := c.Rescaled(baseX, baseY)
	a := Axes{
		XAxisY: (c.extent.Y0 + c.extent.Y1) / 2,
		YAxisX: (c.extent.X0 + c.extent.X1) / 2,
	}
	for _, v := range x.Ticks(c.cfg.Ticks) {
		a.X = append(a.X, Tick{Value: v, Pos: x.Map(v)})
	}
	for _, v := range y.Ticks(c.cfg.Ticks) {
		a.Y = append(a.Y, Tick{Value: v, Pos: y.Map(v)})
	}
	return a
}
