package tetris

import "slices"

// Board is the playfield. Columns are 0 > cols-1 left to right and represent
// the X axis, rows are 0 > rows-1 top to bottom and represent the Y axis.
// A None cell is empty, otherwise it holds the shape that locked there.
type Board struct {
	rows, cols int
	stack      [][]Shape
}

func NewBoard(rows, cols int) *Board {
	return &Board{rows: rows, cols: cols, stack: emptyStack(rows, cols)}
}

func emptyStack(rows, cols int) [][]Shape {
	s := make([][]Shape, rows)
	for i := range s {
		s[i] = make([]Shape, cols)
	}
	return s
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

func (b *Board) Get(x, y int) Shape    { return b.stack[y][x] }
func (b *Board) Set(x, y int, s Shape) { b.stack[y][x] = s }

// Reset empties every cell.
func (b *Board) Reset() { b.stack = emptyStack(b.rows, b.cols) }

// Cells returns a copy of the stack that's safe to hand out.
func (b *Board) Cells() [][]Shape {
	c := make([][]Shape, len(b.stack))
	for i := range b.stack {
		c[i] = slices.Clone(b.stack[i])
	}
	return c
}

// Collides reports whether grid placed with its top-left corner at (x, y)
// is out of bounds or overlaps a locked cell. Cells above the board only
// collide with the walls.
//
//	.	0 1 2 3		.	0 1 2
//	0	X X X X		0	O X X
//	1	X O X X		1	O O O
//	2	X O O O		2	X X X
func (b *Board) Collides(grid [][]bool, x, y int) bool {
	for iy, row := range grid {
		for ix, c := range row {
			if !c {
				continue
			}
			xPos, yPos := x+ix, y+iy
			if xPos < 0 || xPos >= b.cols || yPos >= b.rows {
				return true
			}
			if yPos >= 0 && b.stack[yPos][xPos] != None {
				return true
			}
		}
	}
	return false
}

// Lock writes the tetromino into the stack. If any of its cells sits above
// the board nothing is written and it returns false: the stack topped out.
func (b *Board) Lock(t *Tetromino) bool {
	for iy, row := range t.Grid {
		for _, c := range row {
			if c && t.Y+iy < 0 {
				return false
			}
		}
	}
	for iy, row := range t.Grid {
		for ix, c := range row {
			if c {
				b.stack[t.Y+iy][t.X+ix] = t.Shape
			}
		}
	}
	return true
}

// FullRows returns the indexes of every complete row, bottom to top.
func (b *Board) FullRows() []int {
	var full []int
	for y := b.rows - 1; y >= 0; y-- {
		if !slices.Contains(b.stack[y], None) {
			full = append(full, y)
		}
	}
	return full
}

// RemoveRows drops the given rows and pads the top with empty ones. Rows not
// listed keep their relative order.
func (b *Board) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	kept := make([][]Shape, 0, b.rows)
	for y, r := range b.stack {
		if !slices.Contains(rows, y) {
			kept = append(kept, r)
		}
	}
	stack := emptyStack(b.rows-len(kept), b.cols)
	b.stack = append(stack, kept...)
}
