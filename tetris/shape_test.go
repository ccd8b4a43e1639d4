package tetris

import (
	"reflect"
	"testing"
)

func TestRotateGrid(t *testing.T) {
	tests := []struct {
		name        string
		shape       Shape
		orientation int
		want        [][]bool
	}{
		{
			name:        "T clockwise",
			shape:       T,
			orientation: 1,
			want: [][]bool{
				{false, true, false},
				{false, true, true},
				{false, true, false},
			},
		},
		{
			name:        "J clockwise",
			shape:       J,
			orientation: 1,
			want: [][]bool{
				{false, true, true},
				{false, true, false},
				{false, true, false},
			},
		},
		{
			name:        "J upside down",
			shape:       J,
			orientation: 2,
			want: [][]bool{
				{false, false, false},
				{true, true, true},
				{false, false, true},
			},
		},
		{
			name:        "J counter-clockwise",
			shape:       J,
			orientation: 3,
			want: [][]bool{
				{false, true, false},
				{false, true, false},
				{true, true, false},
			},
		},
		{
			name:        "I clockwise stands on the third column",
			shape:       I,
			orientation: 1,
			want: [][]bool{
				{false, false, true, false},
				{false, false, true, false},
				{false, false, true, false},
				{false, false, true, false},
			},
		},
		{
			name:        "negative orientations wrap around",
			shape:       J,
			orientation: -1,
			want: [][]bool{
				{false, true, false},
				{false, true, false},
				{true, true, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rotateGrid(catalog[tt.shape].grid, tt.orientation)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRotateGridIsPure(t *testing.T) {
	for _, s := range Shapes {
		base := s.Grid()
		for o := range 4 {
			rotateGrid(catalog[s].grid, o)
		}
		if !reflect.DeepEqual(base, catalog[s].grid) {
			t.Errorf("rotating %v modified its catalog grid", s)
		}
		if !reflect.DeepEqual(rotateGrid(catalog[s].grid, 4), base) {
			t.Errorf("wanted orientation 4 of %v to equal orientation 0", s)
		}
	}
}

func TestOGridIsRotationInvariant(t *testing.T) {
	for o := range 4 {
		if !reflect.DeepEqual(rotateGrid(catalog[O].grid, o), O.Grid()) {
			t.Errorf("wanted O orientation %d to equal its base grid", o)
		}
	}
}

func TestShapeCatalog(t *testing.T) {
	sizes := map[Shape]int{I: 4, O: 2, T: 3, S: 3, Z: 3, J: 3, L: 3}
	for _, s := range Shapes {
		if got := s.Size(); got != sizes[s] {
			t.Errorf("wanted %v to have size %d, got %d", s, sizes[s], got)
		}
		var cells int
		for _, r := range s.Grid() {
			for _, c := range r {
				if c {
					cells++
				}
			}
		}
		if cells != 4 {
			t.Errorf("wanted %v to have 4 cells, got %d", s, cells)
		}
		if s.Color() == "" || s.String() == "" {
			t.Errorf("wanted %v to have a color and a name", s)
		}
	}
	if None.String() != "" || None.Color() != "" {
		t.Errorf("wanted None to have no name nor color")
	}
}

func TestKickOffsets(t *testing.T) {
	if got := kicksI.offsets(0, 1); len(got) != 5 || got[1] != (offset{-2, 0}) {
		t.Errorf("unexpected I kicks for 0>1: %v", got)
	}
	if got := kicksJLSTZ.offsets(3, 0); len(got) != 5 || got[1] != (offset{-1, 0}) {
		t.Errorf("unexpected JLSTZ kicks for 3>0: %v", got)
	}
	// 0>2 has no entry in either table.
	for _, k := range []kickFamily{kicksI, kicksJLSTZ, kicksNone} {
		if got := k.offsets(0, 2); !reflect.DeepEqual(got, zeroKick) {
			t.Errorf("wanted missing transition to fall back to a zero kick, got %v", got)
		}
	}
}
