package fractalview

import (
	"errors"
	"testing"
)

func TestPixelToComplexCorners(t *testing.T) {
	rect := mustRect(t, 5, 3)
	region := Region{Min: complex(-2, -1), Max: complex(2, 1)}

	tests := []struct {
		p    Point
		want complex128
	}{
		{Point{0, 0}, complex(-2, -1)},
		{Point{4, 2}, complex(2, 1)},
		{Point{2, 1}, complex(0, 0)},
	}
	for _, tt := range tests {
		got, err := PixelToComplex(tt.p, rect, region)
		if err != nil {
			t.Fatalf("PixelToComplex(%v): %v", tt.p, err)
		}
		if !approxEqual(real(got), real(tt.want), epsilon) || !approxEqual(imag(got), imag(tt.want), epsilon) {
			t.Errorf("PixelToComplex(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPixelToComplexOutside(t *testing.T) {
	rect := mustRect(t, 2, 2)
	_, err := PixelToComplex(Point{2, 0}, rect, DefaultRegion())
	var ce *CoordinateError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CoordinateError", err)
	}
	if ce.Point != (Point{2, 0}) {
		t.Errorf("CoordinateError.Point = %v, want (2,0)", ce.Point)
	}
}

func TestMandelbrotCompute(t *testing.T) {
	rect := mustRect(t, 3, 3)
	m, err := NewMandelbrot(rect, Region{Min: complex(-2, -2), Max: complex(2, 2)}, 50)
	if err != nil {
		t.Fatal(err)
	}
	// Origin is in the set.
	if n, _ := m.Compute(Point{1, 1}); n != 50 {
		t.Errorf("Compute(origin) = %d, want 50", n)
	}
	// -2-2i escapes after one step.
	if n, _ := m.Compute(Point{0, 0}); n != 1 {
		t.Errorf("Compute(-2-2i) = %d, want 1", n)
	}
}

func TestJuliaCompute(t *testing.T) {
	rect := mustRect(t, 3, 3)
	j, err := NewJulia(rect, Region{Min: complex(-2, -2), Max: complex(2, 2)}, 50, DefaultJuliaC)
	if err != nil {
		t.Fatal(err)
	}
	// The starting point is already outside the escape radius.
	if n, _ := j.Compute(Point{0, 0}); n != 0 {
		t.Errorf("Compute(-2-2i) = %d, want 0", n)
	}
	if n, _ := j.Compute(Point{1, 1}); n == 0 {
		t.Error("Compute(origin) escaped immediately")
	}
}

func TestZeroIterations(t *testing.T) {
	rect := mustRect(t, 2, 2)
	if _, err := NewMandelbrot(rect, DefaultRegion(), 0); !errors.Is(err, ErrZeroIterations) {
		t.Errorf("NewMandelbrot err = %v, want ErrZeroIterations", err)
	}
	if _, err := NewJulia(rect, DefaultRegion(), 0, DefaultJuliaC); !errors.Is(err, ErrZeroIterations) {
		t.Errorf("NewJulia err = %v, want ErrZeroIterations", err)
	}
}
