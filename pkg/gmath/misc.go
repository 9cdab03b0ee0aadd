package gmath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// AsinhStretch maps f (>=0, in units of the softening scale) into
// [0,1) against the given ceiling; asinh is linear near zero and
// logarithmic for large f, so faint outer structure survives next to
// a bright core.
func AsinhStretch(f, ceiling float64) float64 {
	if ceiling <= 0.0 {
		return 0.0
	}
	v := math.Asinh(f) / ceiling
	if v < 0.0 { v = 0.0 }
	if v > 1.0 { v = 1.0 }
	return v
}

func Clamp01(f float64) float64 {
	if f < 0.0 { return 0.0 }
	if f > 1.0 { return 1.0 }
	return f
}
