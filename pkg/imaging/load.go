package imaging

import(
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/galaxy-imager/pkg/morph"
)

// A Scene is everything one imaging run needs, loaded from a yaml
// file: the morphology parameters, the image geometry, the
// externally-computed photometry, and the display config. Typed
// fields throughout - no open-ended parameter dicts.
type Scene struct {
	Morphology MorphologyParams
	Geometry   GeometryParams
	Photometry PhotometryVector
	Config     Config
}

type MorphologyParams struct {
	Profile     string  // "sersic" or "point"
	REff        float64
	SersicIndex float64
	Ellipticity float64
	ThetaDeg    float64
}

type GeometryParams struct {
	Resolution float64 // Length units per pixel
	FOV        float64 // Length units across the whole frame
}

// Build validates the parameters and constructs the morphology model.
func (mp MorphologyParams)Build() (morph.Model, error) {
	switch mp.Profile {
	case "sersic", "":
		return morph.NewSersic2D(mp.REff, mp.SersicIndex, mp.Ellipticity, mp.ThetaDeg)
	case "point":
		return morph.PointSource{}, nil
	default:
		return nil, fmt.Errorf("%w: morphology profile %q, want sersic or point", ErrInvalidParameter, mp.Profile)
	}
}

func LoadScene(filename string) (Scene, error) {
	s := Scene{Config: NewConfig()}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return s, fmt.Errorf("scene read '%s': %v", filename, err)
	}

	if err := yaml.Unmarshal(contents, &s); err != nil {
		return s, fmt.Errorf("scene parse '%s': %v", filename, err)
	}

	return s, nil
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read '%s': %v", filename, err)
	}

	return newConfigFromYaml(contents)
}
