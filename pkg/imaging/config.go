package imaging

import(
	"log"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Verbosity         int

	Stretch           string  // Which stretch policy composites RGB; see ListStretches()
	PercentileFloor   float64 // Black point percentile for percentile/asinh stretches
	PercentileCeiling float64 // White point percentile
	AsinhSoftening    float64 // Knee of the asinh stretch, as a fraction of the clipped range

	PSFRounds         int     // Blur passes applied to every band; 0 = no PSF
	DisplayWidth      int     // Pixel width of the plotted RGB image

	RGBFilters        map[string]string // Band assignment, e.g. R: J, G: V, B: U
}

func NewConfig() Config {
	return Config{
		Stretch:           "asinh",
		PercentileFloor:   0.005,
		PercentileCeiling: 0.995,
		AsinhSoftening:    0.02,
		DisplayWidth:      800,
		RGBFilters:        map[string]string{},
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// GetStretch picks the stretch policy by name. Unknown names are a
// CLI-level configuration botch, so die loudly.
func (c Config)GetStretch() StretchPolicy {
	switch c.Stretch {
	case "linear":     return c.LinearStretch()
	case "percentile": return c.PercentileStretch()
	case "asinh", "":  return c.AsinhStretch()
	case "drago03", "reinhard05", "linear-tmo":
		return c.TonemapStretch(c.Stretch)
	default:
		log.Fatalf("no stretch policy named '%s', wanted %s", c.Stretch, ListStretches())
		return nil
	}
}
