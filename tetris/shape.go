package tetris

// Shape identifies one of the seven tetromino kinds. It is also the token
// stored in the board's cells, None being an empty cell.
type Shape uint8

const (
	None Shape = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Shapes lists every playable shape in catalog order.
var Shapes = [7]Shape{I, O, T, S, Z, J, L}

// Colors as hex tokens the renderer maps to whatever it can draw.
const (
	Cyan    = "#00f0f0"
	Yellow  = "#f0f000"
	Magenta = "#a000f0"
	Green   = "#00f000"
	Red     = "#f00000"
	Blue    = "#0000f0"
	Orange  = "#f0a000"
)

type definition struct {
	name  string
	color string
	kicks kickFamily
	grid  [][]bool
}

/*
.	I		.	O		.	T		.	S

.	0 1 2 3		.	0 1		.	0 1 2		.	0 1 2
0	X X X X		0	O O		0	X O X		0	X O O
1	O O O O		1	O O		1	O O O		1	O O X
2	X X X X				2	X X X		2	X X X
3	X X X X

.	Z		.	J		.	L

.	0 1 2		.	0 1 2		.	0 1 2
0	O O X		0	O X X		0	X X O
1	X O O		1	O O O		1	O O O
2	X X X		2	X X X		2	X X X
*/
var catalog = map[Shape]definition{
	I: {name: "I", color: Cyan, kicks: kicksI, grid: [][]bool{
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	}},
	O: {name: "O", color: Yellow, kicks: kicksNone, grid: [][]bool{
		{true, true},
		{true, true},
	}},
	T: {name: "T", color: Magenta, kicks: kicksJLSTZ, grid: [][]bool{
		{false, true, false},
		{true, true, true},
		{false, false, false},
	}},
	S: {name: "S", color: Green, kicks: kicksJLSTZ, grid: [][]bool{
		{false, true, true},
		{true, true, false},
		{false, false, false},
	}},
	Z: {name: "Z", color: Red, kicks: kicksJLSTZ, grid: [][]bool{
		{true, true, false},
		{false, true, true},
		{false, false, false},
	}},
	J: {name: "J", color: Blue, kicks: kicksJLSTZ, grid: [][]bool{
		{true, false, false},
		{true, true, true},
		{false, false, false},
	}},
	L: {name: "L", color: Orange, kicks: kicksJLSTZ, grid: [][]bool{
		{false, false, true},
		{true, true, true},
		{false, false, false},
	}},
}

func (s Shape) String() string {
	if d, ok := catalog[s]; ok {
		return d.name
	}
	return ""
}

// Color returns the display color of the shape, empty for None.
func (s Shape) Color() string { return catalog[s].color }

// Grid returns a copy of the shape's mask at spawn orientation.
func (s Shape) Grid() [][]bool { return rotateGrid(catalog[s].grid, 0) }

// Size is the side of the shape's square bounding box.
func (s Shape) Size() int { return len(catalog[s].grid) }

func (s Shape) valid() bool {
	_, ok := catalog[s]
	return ok
}

// rotateGrid returns a new grid with the base mask turned clockwise
// orientation times. Grids are indexed [row][col]: a cell at col x, row y
// ends up at (n-1-y, x) after one turn.
func rotateGrid(base [][]bool, orientation int) [][]bool {
	n := len(base)
	o := ((orientation % 4) + 4) % 4
	rotated := make([][]bool, n)
	for i := range rotated {
		rotated[i] = make([]bool, n)
	}
	for y := range n {
		for x := range n {
			switch o {
			case 0:
				rotated[y][x] = base[y][x]
			case 1:
				rotated[x][n-1-y] = base[y][x]
			case 2:
				rotated[n-1-y][n-1-x] = base[y][x]
			case 3:
				rotated[n-1-x][y] = base[y][x]
			}
		}
	}
	return rotated
}
