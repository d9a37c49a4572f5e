package mask

import (
	"reflect"
	"testing"
)

func TestUnion(t *testing.T) {
	a := []byte{255, 0, 0, 255}
	b := []byte{0, 0, 255, 255}
	want := []byte{255, 0, 255, 255}
	if got := Union(a, b); !reflect.DeepEqual(got, want) {
		t.Errorf("Union: got %v, want %v", got, want)
	}
	if got := Union(a, a); !reflect.DeepEqual(got, a) {
		t.Errorf("Union(m, m): got %v, want %v", got, a)
	}
}

func TestIntersect(t *testing.T) {
	a := []byte{255, 0, 0, 255}
	b := []byte{0, 0, 255, 255}
	want := []byte{0, 0, 0, 255}
	if got := Intersect(a, b); !reflect.DeepEqual(got, want) {
		t.Errorf("Intersect: got %v, want %v", got, want)
	}

	for i, v := range Intersect(a, Invert(a)) {
		if v != 0 {
			t.Errorf("Intersect(m, Invert(m))[%d] = %d, want 0", i, v)
		}
	}
}

func TestSubtract(t *testing.T) {
	a := []byte{255, 255, 0, 0}
	b := []byte{255, 0, 255, 0}
	// Both selected -> 0, otherwise b's value.
	want := []byte{0, 0, 255, 0}
	if got := Subtract(a, b); !reflect.DeepEqual(got, want) {
		t.Errorf("Subtract: got %v, want %v", got, want)
	}
}

func TestInvert(t *testing.T) {
	plane := []byte{255, 0, 255, 0, 0}
	inv := Invert(plane)
	if !reflect.DeepEqual(inv, []byte{0, 255, 0, 255, 255}) {
		t.Errorf("Invert: got %v", inv)
	}
	if got := Invert(inv); !reflect.DeepEqual(got, plane) {
		t.Errorf("Invert(Invert(m)): got %v, want %v", got, plane)
	}
}

func TestInvertEncoded(t *testing.T) {
	tests := []struct {
		name string
		in   RLE
		want RLE
	}{
		{"leading background", RLE{2, 3, 1}, RLE{0, 2, 3, 1}},
		{"leading foreground", RLE{0, 2, 3}, RLE{2, 3}},
		{"all background", RLE{4}, RLE{0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvertEncoded(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if back := InvertEncoded(got); !reflect.DeepEqual(back, Encode(Decode(tt.in))) {
				t.Errorf("double inversion: got %v, want %v", back, tt.in)
			}
		})
	}
}

func TestPlaneConversion(t *testing.T) {
	m := New(3, 2)
	m.Set(1, 0)
	m.Set(2, 1)

	plane := ToPlane(m)
	if !reflect.DeepEqual(plane, []byte{0, 255, 0, 0, 0, 255}) {
		t.Fatalf("ToPlane: got %v", plane)
	}

	back := FromPlane(plane, 3, 2)
	if !reflect.DeepEqual(back.Data, m.Data) {
		t.Errorf("FromPlane data: got %v, want %v", back.Data, m.Data)
	}
	if back.Bounds != m.Bounds {
		t.Errorf("FromPlane bounds: got %+v, want %+v", back.Bounds, m.Bounds)
	}
}

func TestAlgebra_LengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched lengths")
		}
	}()
	Union([]byte{0}, []byte{0, 0})
}
