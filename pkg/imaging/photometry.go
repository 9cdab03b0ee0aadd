package imaging

import(
	"fmt"
	"sort"
)

// A PhotometryVector maps a band name to a single scalar flux
// density (luminosity per unit frequency) - the output of whatever
// spectral synthesis code integrated the population's spectrum
// through each filter curve. We never look inside the physics, just
// the numbers.
type PhotometryVector map[string]float64

func (pv PhotometryVector)Bands() []string {
	bands := make([]string, 0, len(pv))
	for b := range pv {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	return bands
}

// Require checks the vector covers every band in the filter set.
func (pv PhotometryVector)Require(fs FilterSet) error {
	for _, b := range fs {
		if _, exists := pv[b]; !exists {
			return fmt.Errorf("%w: photometry has no %q (has %v)", ErrMissingBand, b, pv.Bands())
		}
	}
	return nil
}

// A FilterSet is the ordered set of band names an imaging run cares
// about. The filter curves themselves live with the photometry
// producer; all we need are the names.
type FilterSet []string

// UVJ is the classic rest-frame U, V, J set.
func UVJ() FilterSet { return FilterSet{"U", "V", "J"} }
