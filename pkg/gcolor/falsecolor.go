package gcolor

// False-color rendering of single-band flux grids: map normalized
// flux through a two-color ramp, blended in Lab space so the
// midtones don't go muddy the way naive RGB blends do.

import(
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/galaxy-imager/pkg/gmath"
)

type Ramp struct {
	Lo, Hi colorful.Color
}

// HeatRamp runs near-black to orange-white, the usual choice for
// flux maps.
func HeatRamp() Ramp {
	return Ramp{
		Lo: colorful.Hsv(240.0, 0.8, 0.05),
		Hi: colorful.Hsv(40.0, 0.3, 1.0),
	}
}

// CoolRamp runs near-black to cyan, for side-by-side band compares.
func CoolRamp() Ramp {
	return Ramp{
		Lo: colorful.Hsv(280.0, 0.8, 0.05),
		Hi: colorful.Hsv(180.0, 0.3, 1.0),
	}
}

func (r Ramp)At(t float64) colorful.Color {
	return r.Lo.BlendLab(r.Hi, gmath.Clamp01(t)).Clamped()
}

// Render maps the grid through the ramp, normalized against its own
// min/max and gamma-expanded so the faint end is visible.
func Render(fg *gmath.FloatGrid, ramp Ramp) *image.RGBA {
	min, max := fg.MinMax()
	spread := max - min
	if spread == 0.0 { spread = 1.0 }

	img := image.NewRGBA(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			t := gmath.GammaExpand_F64((fg.Get(x, y) - min) / spread)
			img.Set(x, y, ramp.At(t))
		}
	}

	return img
}
