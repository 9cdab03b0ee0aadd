package imaging

import(
	"fmt"
	"math"
	"sort"

	"github.com/abworrall/galaxy-imager/pkg/gmath"
)

// An ImageCollection owns one flux Image per band, all sharing the
// same spatial geometry: `Resolution` length-units per pixel, a
// square field of view `FOV` across, so Npix = round(FOV/Resolution)
// pixels a side. Every image in the collection has that shape.
//
// Not safe for concurrent mutation; the pipeline is single-threaded
// batch work.
type ImageCollection struct {
	Resolution float64
	FOV        float64
	Npix       int

	Images     map[string]*Image
	RGB        *RGBImage // Most recent MakeRGBImage result
}

func NewImageCollection(resolution, fov float64) (*ImageCollection, error) {
	if resolution <= 0.0 {
		return nil, fmt.Errorf("%w: resolution %g, want > 0", ErrInvalidParameter, resolution)
	}
	if fov <= 0.0 {
		return nil, fmt.Errorf("%w: fov %g, want > 0", ErrInvalidParameter, fov)
	}

	npix := int(math.Round(fov / resolution))
	if npix < 1 {
		return nil, fmt.Errorf("%w: fov %g spans no pixels at resolution %g", ErrInvalidParameter, fov, resolution)
	}

	return &ImageCollection{
		Resolution: resolution,
		FOV:        fov,
		Npix:       npix,
		Images:     map[string]*Image{},
	}, nil
}

func (ic *ImageCollection)String() string {
	str := fmt.Sprintf("ImageCollection %dpix @%g/pix [\n", ic.Npix, ic.Resolution)
	for _, b := range ic.Bands() {
		str += fmt.Sprintf("  %s\n", ic.Images[b])
	}
	return str + "]\n"
}

func (ic *ImageCollection)Bands() []string {
	bands := make([]string, 0, len(ic.Images))
	for b := range ic.Images {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	return bands
}

// Img looks up one band's image.
func (ic *ImageCollection)Img(band string) (*Image, error) {
	img, exists := ic.Images[band]
	if !exists {
		return nil, fmt.Errorf("%w: collection has no %q (has %v)", ErrMissingBand, band, ic.Bands())
	}
	return img, nil
}

// GetImgsSmoothed distributes each band's scalar flux over the
// density grid: Image[b] = photometry[b] * grid, elementwise. Since
// the grid sums to 1.0, each image's pixel sum comes out equal to the
// band's photometry. "Smoothed" means the light lands where the
// morphology says, rather than as a point at the center.
//
// Bands already present are overwritten on key collision; other
// bands are left alone.
func (ic *ImageCollection)GetImgsSmoothed(photometry PhotometryVector, densityGrid *gmath.FloatGrid) error {
	if densityGrid.Dx() != ic.Npix || densityGrid.Dy() != ic.Npix {
		return fmt.Errorf("%w: density grid %dx%d, collection wants %dx%d",
			ErrShapeMismatch, densityGrid.Dx(), densityGrid.Dy(), ic.Npix, ic.Npix)
	}

	for band, flux := range photometry {
		grid := densityGrid.Copy()
		grid.Scale(flux)
		ic.Images[band] = NewImage(band, *grid)
	}

	return nil
}

// ApplyPSF smooths every image with `rounds` passes of the separable
// Gaussian kernel, then renormalizes each band so its total flux is
// untouched. More rounds, wider PSF.
func (ic *ImageCollection)ApplyPSF(rounds int) error {
	if rounds < 0 {
		return fmt.Errorf("%w: psf rounds %d, want >= 0", ErrInvalidParameter, rounds)
	}

	for band, img := range ic.Images {
		total := img.Sum()
		grid := img.FloatGrid
		for i:=0; i<rounds; i++ {
			grid = grid.GaussianBlur()
		}
		if total != 0.0 {
			if err := grid.Normalize(total); err != nil {
				return fmt.Errorf("psf %s: %v", band, err)
			}
		}
		ic.Images[band] = NewImage(band, grid)
	}

	return nil
}
