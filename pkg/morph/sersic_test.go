package morph

import (
	"errors"
	"math"
	"testing"
)

func TestSersicBKnownValues(t *testing.T) {
	// Reference values for the half-light constant
	cases := []struct{ n, want float64 }{
		{0.5, 0.693147}, // b = ln 2 for n = 1/2
		{1.0, 1.678347},
		{4.0, 7.669250},
	}

	for _, c := range cases {
		if got := SersicB(c.n); math.Abs(got-c.want) > 1e-4 {
			t.Errorf("SersicB(%g) = %f, want %f", c.n, got, c.want)
		}
	}
}

func TestNewSersic2DValidation(t *testing.T) {
	cases := []struct {
		name                       string
		rEff, n, ellipticity, theta float64
	}{
		{"zero r_eff", 0.0, 1.0, 0.0, 0.0},
		{"negative r_eff", -1.0, 1.0, 0.0, 0.0},
		{"zero index", 1.0, 0.0, 0.0, 0.0},
		{"negative index", 1.0, -2.0, 0.0, 0.0},
		{"ellipticity one", 1.0, 1.0, 1.0, 0.0},
		{"ellipticity negative", 1.0, 1.0, -0.1, 0.0},
	}

	for _, c := range cases {
		if _, err := NewSersic2D(c.rEff, c.n, c.ellipticity, c.theta); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", c.name, err)
		}
	}

	if _, err := NewSersic2D(1.0, 1.0, 0.5, 30.0); err != nil {
		t.Errorf("Valid parameters rejected: %v", err)
	}
}

func TestDensityGridNormalization(t *testing.T) {
	cases := []struct {
		rEff, n, ellipticity float64
		npix                 int
	}{
		{1.0, 1.0, 0.0, 50},
		{1.0, 4.0, 0.5, 64},
		{0.001, 1.0, 0.0, 10}, // tiny r_eff: all flux in a few pixels, still normalized
		{5.0, 0.7, 0.9, 33},
	}

	for _, c := range cases {
		s, err := NewSersic2D(c.rEff, c.n, c.ellipticity, 0.0)
		if err != nil {
			t.Fatalf("NewSersic2D: %v", err)
		}

		grid, err := s.GetDensityGrid(0.1, c.npix)
		if err != nil {
			t.Fatalf("GetDensityGrid: %v", err)
		}

		if grid.Dx() != c.npix || grid.Dy() != c.npix {
			t.Errorf("Expected %dx%d grid, got %dx%d", c.npix, c.npix, grid.Dx(), grid.Dy())
		}

		if sum := grid.Sum(); math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Grid sum %.12f, want 1.0 (r_eff %g n %g e %g)", sum, c.rEff, c.n, c.ellipticity)
		}

		min, _ := grid.MinMax()
		if min < 0.0 {
			t.Errorf("Grid has negative value %g", min)
		}
	}
}

func TestLiteralSersic2DMatchesConstructor(t *testing.T) {
	// A Sersic2D built as a composite literal hasn't had bn solved;
	// rasterizing it must still give the constructor's profile, not a
	// silently flat one
	lit := Sersic2D{REff: 1.0, SersicIndex: 4.0, Ellipticity: 0.3, ThetaDeg: 20.0}
	built, err := NewSersic2D(1.0, 4.0, 0.3, 20.0)
	if err != nil {
		t.Fatalf("NewSersic2D: %v", err)
	}

	gLit, err := lit.GetDensityGrid(0.1, 31)
	if err != nil {
		t.Fatalf("GetDensityGrid (literal): %v", err)
	}
	gBuilt, err := built.GetDensityGrid(0.1, 31)
	if err != nil {
		t.Fatalf("GetDensityGrid (constructor): %v", err)
	}

	for x := 0; x < 31; x++ {
		for y := 0; y < 31; y++ {
			if math.Abs(gLit.Get(x, y)-gBuilt.Get(x, y)) > 1e-12 {
				t.Fatalf("Literal and constructor grids differ at (%d,%d): %g vs %g",
					x, y, gLit.Get(x, y), gBuilt.Get(x, y))
			}
		}
	}

	// Invalid literal fields fail at rasterization, same as the constructor
	bad := Sersic2D{REff: -1.0, SersicIndex: 1.0}
	if _, err := bad.GetDensityGrid(0.1, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Bad literal: expected ErrInvalidParameter, got %v", err)
	}
}

func TestDensityGridIdempotent(t *testing.T) {
	s, _ := NewSersic2D(1.0, 2.0, 0.3, 45.0)

	g1, err := s.GetDensityGrid(0.05, 40)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}
	g2, err := s.GetDensityGrid(0.05, 40)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}

	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			if g1.Get(x, y) != g2.Get(x, y) {
				t.Fatalf("Grids differ at (%d,%d): %g vs %g", x, y, g1.Get(x, y), g2.Get(x, y))
			}
		}
	}
}

func TestDensityGridSinglePixel(t *testing.T) {
	s, _ := NewSersic2D(1.0, 1.0, 0.0, 0.0)

	grid, err := s.GetDensityGrid(1.0, 1)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}
	if grid.Get(0, 0) != 1.0 {
		t.Errorf("Single-pixel grid should hold exactly 1.0, got %g", grid.Get(0, 0))
	}
}

func TestDensityGridGeometryErrors(t *testing.T) {
	s, _ := NewSersic2D(1.0, 1.0, 0.0, 0.0)

	if _, err := s.GetDensityGrid(0.1, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("npix=0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := s.GetDensityGrid(0.1, -5); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("npix<0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := s.GetDensityGrid(0.0, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("resolution=0: expected ErrInvalidParameter, got %v", err)
	}
}

func TestEllipticityElongatesMajorAxis(t *testing.T) {
	// theta=0 puts the major axis along x; pixels off-center along x
	// should be brighter than equally distant pixels along y
	s, _ := NewSersic2D(1.0, 1.0, 0.6, 0.0)

	grid, err := s.GetDensityGrid(0.1, 41)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}

	c := 20
	if grid.Get(c+10, c) <= grid.Get(c, c+10) {
		t.Errorf("Expected major axis (x) brighter: x-offset %g vs y-offset %g",
			grid.Get(c+10, c), grid.Get(c, c+10))
	}

	// Rotating by 90deg swaps the axes
	s90, _ := NewSersic2D(1.0, 1.0, 0.6, 90.0)
	grid90, err := s90.GetDensityGrid(0.1, 41)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}
	if grid90.Get(c, c+10) <= grid90.Get(c+10, c) {
		t.Errorf("Expected 90deg rotation to put major axis along y")
	}
}

func TestCircularProfileIsSymmetric(t *testing.T) {
	s, _ := NewSersic2D(0.5, 1.0, 0.0, 0.0)

	grid, err := s.GetDensityGrid(0.1, 21)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}

	c := 10
	for _, d := range []int{1, 3, 7} {
		vals := []float64{grid.Get(c+d, c), grid.Get(c-d, c), grid.Get(c, c+d), grid.Get(c, c-d)}
		for i := 1; i < len(vals); i++ {
			if math.Abs(vals[i]-vals[0]) > 1e-12 {
				t.Errorf("Circular profile asymmetric at offset %d: %v", d, vals)
			}
		}
	}

	// Peak at the center
	_, max := grid.MinMax()
	if grid.Get(c, c) != max {
		t.Errorf("Expected peak at the center, center %g max %g", grid.Get(c, c), max)
	}
}

func TestPointSource(t *testing.T) {
	p := PointSource{}

	odd, err := p.GetDensityGrid(0.1, 5)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}
	if odd.Get(2, 2) != 1.0 {
		t.Errorf("Odd npix: expected all flux at center, got %g", odd.Get(2, 2))
	}
	if sum := odd.Sum(); sum != 1.0 {
		t.Errorf("Odd npix: sum %g, want 1.0", sum)
	}

	even, err := p.GetDensityGrid(0.1, 4)
	if err != nil {
		t.Fatalf("GetDensityGrid: %v", err)
	}
	for _, x := range []int{1, 2} {
		for _, y := range []int{1, 2} {
			if even.Get(x, y) != 0.25 {
				t.Errorf("Even npix: expected 0.25 at (%d,%d), got %g", x, y, even.Get(x, y))
			}
		}
	}
	if sum := even.Sum(); sum != 1.0 {
		t.Errorf("Even npix: sum %g, want 1.0", sum)
	}

	if _, err := p.GetDensityGrid(0.1, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("npix=0: expected ErrInvalidParameter, got %v", err)
	}
}
