package board

import (
	"testing"
)

func TestIsValidEdge(t *testing.T) {
	tests := []struct {
		name string
		a, b Vertex
		want bool
	}{
		{"horizontal right", Vertex{2, 3}, Vertex{3, 3}, true},
		{"horizontal left", Vertex{3, 3}, Vertex{2, 3}, true},
		{"vertical down", Vertex{1, 0}, Vertex{1, 1}, true},
		{"vertical up", Vertex{1, 1}, Vertex{1, 0}, true},
		{"two rows apart", Vertex{2, 3}, Vertex{2, 5}, false},
		{"two columns apart", Vertex{0, 0}, Vertex{2, 0}, false},
		{"diagonal", Vertex{2, 3}, Vertex{3, 4}, false},
		{"same vertex", Vertex{4, 4}, Vertex{4, 4}, false},
		{"far away", Vertex{0, 0}, Vertex{7, 8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEdge(tt.a, tt.b); got != tt.want {
				t.Errorf("IsValidEdge(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := (Edge{A: tt.a, B: tt.b}).Valid(); got != tt.want {
				t.Errorf("Edge.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsValidEdgeExhaustive checks the rule against every vertex pair of
// the largest board.
func TestIsValidEdgeExhaustive(t *testing.T) {
	for ac := 0; ac <= MaxColumns; ac++ {
		for ar := 0; ar <= MaxRows; ar++ {
			for bc := 0; bc <= MaxColumns; bc++ {
				for br := 0; br <= MaxRows; br++ {
					dc, dr := abs(ac-bc), abs(ar-br)
					want := dc+dr == 1
					a, b := Vertex{ac, ar}, Vertex{bc, br}
					if got := IsValidEdge(a, b); got != want {
						t.Fatalf("IsValidEdge(%v, %v) = %v, want %v", a, b, got, want)
					}
				}
			}
		}
	}
}

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		dims    Dimensions
		wantErr bool
	}{
		{Dimensions{1, 1}, false},
		{Dimensions{7, 8}, false},
		{Dimensions{3, 3}, false},
		{Dimensions{0, 3}, true},
		{Dimensions{8, 3}, true},
		{Dimensions{3, 0}, true},
		{Dimensions{3, 9}, true},
		{Dimensions{-1, -1}, true},
	}
	for _, tt := range tests {
		err := tt.dims.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.Validate() error = %v, wantErr %v", tt.dims, err, tt.wantErr)
		}
	}
}

func TestStepWraps(t *testing.T) {
	d := Dimensions{Columns: 3, Rows: 2}
	tests := []struct {
		name   string
		from   Vertex
		dx, dy int
		want   Vertex
	}{
		{"right inside", Vertex{0, 0}, 1, 0, Vertex{1, 0}},
		{"right past last column", Vertex{3, 1}, 1, 0, Vertex{0, 1}},
		{"left before column 0", Vertex{0, 1}, -1, 0, Vertex{3, 1}},
		{"down past last row", Vertex{2, 2}, 0, 1, Vertex{2, 0}},
		{"up before row 0", Vertex{2, 0}, 0, -1, Vertex{2, 2}},
		{"both axes wrap", Vertex{3, 2}, 1, 1, Vertex{0, 0}},
		{"no movement", Vertex{1, 1}, 0, 0, Vertex{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Step(tt.from, tt.dx, tt.dy); got != tt.want {
				t.Errorf("Step(%v, %d, %d) = %v, want %v", tt.from, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	d := Dimensions{Columns: 2, Rows: 2}
	if !d.Contains(Vertex{2, 2}) {
		t.Error("Contains((2,2)) = false, want true")
	}
	if d.Contains(Vertex{3, 0}) {
		t.Error("Contains((3,0)) = true, want false")
	}
	if !d.ContainsCell(1, 1) {
		t.Error("ContainsCell(1,1) = false, want true")
	}
	if d.ContainsCell(2, 0) {
		t.Error("ContainsCell(2,0) = true, want false")
	}
}

func TestEdgeString(t *testing.T) {
	e := Edge{A: Vertex{0, 1}, B: Vertex{1, 1}}
	if got, want := e.String(), "(0,1)-(1,1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
