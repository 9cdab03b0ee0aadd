package imaging

import(
	"fmt"
	"math"

	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/galaxy-imager/pkg/gmath"
)

// A StretchPolicy fills in an RGBImage's display Channels from its
// Linear flux. There are two families:
// - per-channel stretches: each channel normalized against its own
//   scale (linear, percentile, asinh)
// - composite tonemappers: the three linear channels treated as one
//   HDR image and run through a tonemapping operator
type StretchPolicy func(*RGBImage) error

var Stretches = []string{"linear", "percentile", "asinh", "drago03", "reinhard05", "linear-tmo"}

func ListStretches() string {
	return fmt.Sprintf("%v", Stretches)
}

// stretchEachChannel runs a flux->[0,1] map over every channel
// independently.
func stretchEachChannel(f func(*gmath.FloatGrid) *gmath.FloatGrid) StretchPolicy {
	return func(rgb *RGBImage) error {
		for i:=0; i<3; i++ {
			rgb.Channels[i] = f(rgb.Linear[i])
		}
		return nil
	}
}

// LinearStretch maps [min,max] -> [0,1]. Simple, but a bright core
// leaves the rest of the profile near black.
func (c Config)LinearStretch() StretchPolicy {
	return stretchEachChannel(func(in *gmath.FloatGrid) *gmath.FloatGrid {
		min, max := in.MinMax()
		return rescale(in, min, max, func(f float64) float64 { return f })
	})
}

// PercentileStretch is linear, but picks black/white points at
// configured percentiles of the nonzero flux, clipping the tails.
func (c Config)PercentileStretch() StretchPolicy {
	return stretchEachChannel(func(in *gmath.FloatGrid) *gmath.FloatGrid {
		min, max := in.FindMinMaxAtPercentile(c.PercentileFloor, c.PercentileCeiling)
		return rescale(in, min, max, func(f float64) float64 { return f })
	})
}

// AsinhStretch is the default: linear in the faint regime,
// logarithmic in the bright, so outer structure shows up without
// blowing out the core. Softening is the knee, as a fraction of the
// percentile-clipped range.
func (c Config)AsinhStretch() StretchPolicy {
	return stretchEachChannel(func(in *gmath.FloatGrid) *gmath.FloatGrid {
		min, max := in.FindMinMaxAtPercentile(c.PercentileFloor, c.PercentileCeiling)
		beta := (max - min) * c.AsinhSoftening
		if beta <= 0.0 {
			return rescale(in, min, max, func(f float64) float64 { return f })
		}
		ceiling := math.Asinh((max - min) / beta)
		return rescale(in, min, max, func(f float64) float64 {
			return gmath.AsinhStretch(f * (max - min) / beta, ceiling)
		})
	})
}

// rescale maps flux through `curve` after normalizing against
// [min,max]; curve takes and returns [0,1]-ish values, and the
// result is clamped. A flat channel maps to all-zero.
func rescale(in *gmath.FloatGrid, min, max float64, curve func(float64) float64) *gmath.FloatGrid {
	out := in.NewFromThis()
	spread := max - min

	for x:=0; x<in.Dx(); x++ {
		for y:=0; y<in.Dy(); y++ {
			if spread <= 0.0 {
				continue
			}
			out.Set(x, y, gmath.Clamp01(curve(gmath.Clamp01((in.Get(x, y) - min) / spread))))
		}
	}

	return &out
}

// TonemapStretch runs the composite through one of the hdr package's
// tonemapping operators. Parameters are tweaked the same way the
// operators need for any image with a small very-bright region.
func (c Config)TonemapStretch(name string) StretchPolicy {
	return func(rgb *RGBImage) error {
		var op tmo.ToneMappingOperator

		switch name {
		case "drago03":
			d := tmo.NewDefaultDrago03(rgb)
			d.Bias = 1.0 // Otherwise the core blows out
			op = d
		case "reinhard05":
			r := tmo.NewDefaultReinhard05(rgb)
			r.Chromatic = 0.005
			op = r
		case "linear-tmo":
			op = tmo.NewLinear(rgb)
		default:
			return fmt.Errorf("%w: tonemapper %q, wanted %s", ErrInvalidParameter, name, ListStretches())
		}

		newImg := op.Perform()

		for i:=0; i<3; i++ {
			out := rgb.Linear[i].NewFromThis()
			rgb.Channels[i] = &out
		}
		for x:=0; x<rgb.Npix; x++ {
			for y:=0; y<rgb.Npix; y++ {
				r, g, b, _ := newImg.At(x, y).RGBA()
				rgb.Channels[0].Set(x, y, float64(r)/float64(0xFFFF))
				rgb.Channels[1].Set(x, y, float64(g)/float64(0xFFFF))
				rgb.Channels[2].Set(x, y, float64(b)/float64(0xFFFF))
			}
		}

		return nil
	}
}
