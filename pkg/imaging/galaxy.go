package imaging

import(
	"fmt"

	"github.com/abworrall/galaxy-imager/pkg/morph"
)

// A PhotometrySource is the spectral-synthesis collaborator: given a
// filter set, it hands back integrated flux per band. We don't care
// how it got them.
type PhotometrySource interface {
	GetPhotometry(filters FilterSet) (PhotometryVector, error)
}

// A Galaxy pairs a morphology with its photometry. It exists for the
// convenience path only - GetImagesLuminosity just chains the three
// pipeline stages, with no logic of its own.
type Galaxy struct {
	Morphology morph.Model
	Photometry PhotometryVector
}

func NewGalaxy(m morph.Model, pv PhotometryVector) Galaxy {
	return Galaxy{Morphology: m, Photometry: pv}
}

func (g Galaxy)String() string {
	return fmt.Sprintf("Galaxy[%s, bands %v]", g.Morphology, g.Photometry.Bands())
}

// GetImagesLuminosity rasterizes the morphology at the requested
// geometry and distributes every band's flux over it.
func (g Galaxy)GetImagesLuminosity(resolution, fov float64) (*ImageCollection, error) {
	ic, err := NewImageCollection(resolution, fov)
	if err != nil {
		return nil, err
	}

	grid, err := g.Morphology.GetDensityGrid(resolution, ic.Npix)
	if err != nil {
		return nil, err
	}

	if err := ic.GetImgsSmoothed(g.Photometry, grid); err != nil {
		return nil, err
	}

	return ic, nil
}
