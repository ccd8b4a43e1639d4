package tetris

// Wall kick data based on https://tetris.wiki/Super_Rotation_System
// Offsets are (dx, dy) with y growing downward, tried in order.

type kickFamily uint8

const (
	kicksNone kickFamily = iota
	kicksJLSTZ
	kicksI
)

type offset struct{ x, y int }

type transition struct{ from, to int }

var zeroKick = []offset{{0, 0}}

var jlstzKicks = map[transition][]offset{
	{0, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{1, 0}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{1, 2}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{2, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{2, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{3, 2}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 0}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{0, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

var iKicks = map[transition][]offset{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// offsets returns the kick tests for rotating from one orientation to
// another. Transitions with no entry get a single in-place attempt.
func (k kickFamily) offsets(from, to int) []offset {
	var table map[transition][]offset
	switch k {
	case kicksI:
		table = iKicks
	case kicksJLSTZ:
		table = jlstzKicks
	case kicksNone:
		return zeroKick
	}
	if o, ok := table[transition{from, to}]; ok {
		return o
	}
	return zeroKick
}
