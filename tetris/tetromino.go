package tetris

// Rotation direction, in quarter turns.
const (
	Clockwise        = 1
	CounterClockwise = -1
)

// Tetromino is the falling piece. X and Y locate the top-left corner of its
// grid on the stack. Grid is derived from Shape and Orientation.
type Tetromino struct {
	Grid        [][]bool
	X           int
	Y           int
	Orientation int
	Shape       Shape
}

/*
.	Spawn Location (4 columns)

.	0 1 2 3		.	0 1 2
0	X O X X		0	O X X
1	X O O O		1	O O O
2	X X X X		2	X X X
*/
func newTetromino(s Shape, cols int) *Tetromino {
	n := s.Size()
	return &Tetromino{
		Grid:  s.Grid(),
		X:     cols/2 - n/2,
		Y:     0,
		Shape: s,
	}
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	c.Grid = rotateGrid(t.Grid, 0)
	return &c
}

// Collides reports whether the tetromino overlaps the board at its position.
func (t *Tetromino) Collides(b *Board) bool {
	return b.Collides(t.Grid, t.X, t.Y)
}

// Move shifts the tetromino by dx, dy if the destination is free.
func (t *Tetromino) Move(b *Board, dx, dy int) bool {
	if b.Collides(t.Grid, t.X+dx, t.Y+dy) {
		return false
	}
	t.X += dx
	t.Y += dy
	return true
}

// HardDrop moves the tetromino down until it rests and returns how many rows
// it fell.
func (t *Tetromino) HardDrop(b *Board) int {
	var n int
	for t.Move(b, 0, 1) {
		n++
	}
	return n
}

// Ghost returns the Y the tetromino would land on if dropped.
func (t *Tetromino) Ghost(b *Board) int {
	y := t.Y
	for !b.Collides(t.Grid, t.X, y+1) {
		y++
	}
	return y
}

// Rotate turns the tetromino a quarter in dir (Clockwise or
// CounterClockwise), trying each wall kick of its family in order. When all
// of them collide nothing changes.
func (t *Tetromino) Rotate(b *Board, dir int) bool {
	if dir != Clockwise && dir != CounterClockwise {
		return false
	}
	to := (t.Orientation + dir + 4) % 4
	def := catalog[t.Shape]
	grid := rotateGrid(def.grid, to)
	if t.Shape == O {
		t.Orientation = to
		t.Grid = grid
		return true
	}
	for _, k := range def.kicks.offsets(t.Orientation, to) {
		if !b.Collides(grid, t.X+k.x, t.Y+k.y) {
			t.Grid = grid
			t.Orientation = to
			t.X += k.x
			t.Y += k.y
			return true
		}
	}
	return false
}

// Rotate180 is two clockwise quarter turns, each resolving its own kicks.
// If the second turn fails the tetromino goes back to where it started.
func (t *Tetromino) Rotate180(b *Board) bool {
	before := *t
	if !t.Rotate(b, Clockwise) {
		return false
	}
	if !t.Rotate(b, Clockwise) {
		*t = before
		return false
	}
	return true
}
