package board

// Canvas defaults used by the browser client.
const (
	CanvasWidth  = 400.0
	CanvasHeight = 600.0
	OffsetX      = 40.0
	OffsetY      = 60.0
	PegRadius    = 5.0
	BallRadius   = 8.0
	LabelGap     = 20.0
)

// Point is a pixel position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SlotLabel places one multiplier below the last peg row.
type SlotLabel struct {
	Point
	Column     int     `json:"column"`
	Multiplier float64 `json:"multiplier"`
}

// Geometry maps column/row space onto the canvas. It is derived from a
// Config on demand and never stored.
type Geometry struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	OffsetX    float64 `json:"offset_x"`
	OffsetY    float64 `json:"offset_y"`
	RowSpacing float64 `json:"row_spacing"`
	ColSpacing float64 `json:"col_spacing"`
	PegRadius  float64 `json:"peg_radius"`
	BallRadius float64 `json:"ball_radius"`

	cfg Config
}

// Layout computes the default canvas geometry for cfg.
func Layout(cfg Config) Geometry {
	return LayoutCanvas(cfg, CanvasWidth, CanvasHeight)
}

// LayoutCanvas computes the geometry for a custom canvas size.
func LayoutCanvas(cfg Config, width, height float64) Geometry {
	cols := cfg.Columns
	if cols < 2 {
		cols = ColumnCount
	}
	rows := cfg.Rows
	if rows < 1 {
		rows = 1
	}
	return Geometry{
		Width:      width,
		Height:     height,
		OffsetX:    OffsetX,
		OffsetY:    OffsetY,
		RowSpacing: (height - 2*OffsetY) / float64(rows),
		ColSpacing: (width - 2*OffsetX) / float64(cols-1),
		PegRadius:  PegRadius,
		BallRadius: BallRadius,
		cfg:        cfg,
	}
}

// Pegs returns every peg position. Odd rows are shifted by half a column;
// pegs pushed past the right margin are dropped.
func (g Geometry) Pegs() []Point {
	pegs := make([]Point, 0, g.cfg.Rows*g.cfg.Columns)
	for r := 0; r < g.cfg.Rows; r++ {
		for c := 0; c < g.cfg.Columns; c++ {
			x := g.OffsetX + float64(c)*g.ColSpacing
			if r%2 == 1 {
				x += g.ColSpacing / 2
				if x > g.Width-g.OffsetX {
					continue
				}
			}
			pegs = append(pegs, Point{X: x, Y: g.OffsetY + float64(r)*g.RowSpacing})
		}
	}
	return pegs
}

// BallStart is the ball position before the first row.
func (g Geometry) BallStart() Point {
	return Point{X: g.OffsetX + float64(StartColumn)*g.ColSpacing, Y: g.OffsetY}
}

// BallAt is the ball position after row index row, sitting in column col.
func (g Geometry) BallAt(row, col int) Point {
	return Point{
		X: g.OffsetX + float64(col)*g.ColSpacing,
		Y: g.OffsetY + float64(row+1)*g.RowSpacing,
	}
}

// SlotLabels positions the multiplier table under the board.
func (g Geometry) SlotLabels() []SlotLabel {
	y := g.OffsetY + float64(g.cfg.Rows)*g.RowSpacing + LabelGap
	labels := make([]SlotLabel, 0, len(g.cfg.Multipliers))
	for c, m := range g.cfg.Multipliers {
		labels = append(labels, SlotLabel{
			Point:      Point{X: g.OffsetX + float64(c)*g.ColSpacing, Y: y},
			Column:     c,
			Multiplier: m,
		})
	}
	return labels
}
