package imaging

import (
	"math"
	"testing"

	"github.com/abworrall/galaxy-imager/pkg/morph"
)

// The full pipeline: an exponential disc at r_eff=1, half-ellipse,
// imaged in UVJ over a 1.0-wide field at 0.01/pix, composited to RGB.
func TestEndToEndUVJ(t *testing.T) {
	model, err := morph.NewSersic2D(1.0, 1.0, 0.5, 0.0)
	if err != nil {
		t.Fatalf("NewSersic2D: %v", err)
	}

	phot := PhotometryVector{"U": 1.0, "V": 2.0, "J": 3.0}
	if err := phot.Require(UVJ()); err != nil {
		t.Fatalf("Require: %v", err)
	}

	galaxy := NewGalaxy(model, phot)
	img, err := galaxy.GetImagesLuminosity(0.01, 1.0)
	if err != nil {
		t.Fatalf("GetImagesLuminosity: %v", err)
	}

	if img.Npix != 100 {
		t.Fatalf("Expected 100pix collection, got %d", img.Npix)
	}

	for band, flux := range phot {
		i, err := img.Img(band)
		if err != nil {
			t.Fatalf("Img(%s): %v", band, err)
		}
		if i.Dx() != 100 || i.Dy() != 100 {
			t.Errorf("%s: expected 100x100, got %dx%d", band, i.Dx(), i.Dy())
		}
		if sum := i.Sum(); math.Abs(sum-flux)/flux > 1e-9 {
			t.Errorf("%s: flux %0.12f, want %g", band, sum, flux)
		}
	}

	rgb, err := img.MakeRGBImage(map[string]string{"R": "J", "G": "V", "B": "U"}, nil)
	if err != nil {
		t.Fatalf("MakeRGBImage: %v", err)
	}

	if rgb.Npix != 100 {
		t.Errorf("Expected 100pix RGB image, got %d", rgb.Npix)
	}
	for i := 0; i < 3; i++ {
		min, max := rgb.Channels[i].MinMax()
		if min < 0.0 || max > 1.0 {
			t.Errorf("Channel %d outside [0,1]: [%f,%f]", i, min, max)
		}
	}
}

func TestGalaxyPointSource(t *testing.T) {
	galaxy := NewGalaxy(morph.PointSource{}, PhotometryVector{"V": 10.0})

	img, err := galaxy.GetImagesLuminosity(0.1, 0.5) // 5 pix
	if err != nil {
		t.Fatalf("GetImagesLuminosity: %v", err)
	}

	v, _ := img.Img("V")
	if v.Get(2, 2) != 10.0 {
		t.Errorf("Point source flux should land in the central pixel, got %f", v.Get(2, 2))
	}
}

func TestGalaxyBadGeometry(t *testing.T) {
	model, _ := morph.NewSersic2D(1.0, 1.0, 0.0, 0.0)
	galaxy := NewGalaxy(model, PhotometryVector{"V": 1.0})

	if _, err := galaxy.GetImagesLuminosity(0.0, 1.0); err == nil {
		t.Error("Expected error for zero resolution")
	}
	if _, err := galaxy.GetImagesLuminosity(0.1, -1.0); err == nil {
		t.Error("Expected error for negative fov")
	}
}
