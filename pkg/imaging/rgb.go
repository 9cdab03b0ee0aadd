package imaging

import(
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/draw"

	"github.com/abworrall/galaxy-imager/pkg/gmath"
)

var rgbChannelNames = []string{"R", "G", "B"}

// An RGBImage is three bands composited into a displayable image.
// The band-to-channel assignment is fixed at creation; compositing
// with a different assignment builds a new RGBImage.
//
// Linear holds the raw flux per channel; Channels holds the
// stretched display values in [0,1]. Channel order is always
// (R,G,B), whatever order the assignment map iterated in.
type RGBImage struct {
	Assignment map[string]string // "R"/"G"/"B" -> band name
	Linear     [3]*gmath.FloatGrid
	Channels   [3]*gmath.FloatGrid
	Npix       int
}

func (rgb *RGBImage)String() string {
	return fmt.Sprintf("RGBImage[%dpix, R:%s G:%s B:%s]",
		rgb.Npix, rgb.Assignment["R"], rgb.Assignment["G"], rgb.Assignment["B"])
}

// Implement image.Image over the stretched channels
func (rgb *RGBImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (rgb *RGBImage)Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{rgb.Npix, rgb.Npix}}
}
func (rgb *RGBImage)At(x, y int) color.Color {
	if rgb.Channels[0] == nil {
		// Not stretched yet (e.g. mid-tonemap); expose linear flux
		return rgb.HDRAt(x, y)
	}
	return color.RGBA64{
		R: uint16(gmath.Clamp01(rgb.Channels[0].Get(x, y)) * 0xFFFF),
		G: uint16(gmath.Clamp01(rgb.Channels[1].Get(x, y)) * 0xFFFF),
		B: uint16(gmath.Clamp01(rgb.Channels[2].Get(x, y)) * 0xFFFF),
		A: 0xFFFF,
	}
}

// Implement hdr.Image over the linear flux, so the hdr tonemapping
// operators can be used as stretch policies.
func (rgb *RGBImage)HDRAt(x, y int) hdrcolor.Color {
	return hdrcolor.RGB{
		R: rgb.Linear[0].Get(x, y),
		G: rgb.Linear[1].Get(x, y),
		B: rgb.Linear[2].Get(x, y),
	}
}
func (rgb *RGBImage)Size() int { return rgb.Npix * rgb.Npix }

// ToImage bakes the stretched channels into a plain RGBA64.
func (rgb *RGBImage)ToImage() *image.RGBA64 {
	img := image.NewRGBA64(rgb.Bounds())
	for x:=0; x<rgb.Npix; x++ {
		for y:=0; y<rgb.Npix; y++ {
			img.Set(x, y, rgb.At(x, y))
		}
	}
	return img
}

// MakeRGBImage composites three of the collection's bands into an
// RGB image. `rgbFilters` must contain exactly the keys R, G and B,
// each naming a band present in the collection. The stretch policy
// maps linear flux into display range; nil means the default asinh.
//
// The result is returned, and also retained on the collection for
// PlotRGBImage.
func (ic *ImageCollection)MakeRGBImage(rgbFilters map[string]string, policy StretchPolicy) (*RGBImage, error) {
	rgb := &RGBImage{
		Assignment: map[string]string{},
		Npix:       ic.Npix,
	}

	for i, channel := range rgbChannelNames {
		band, exists := rgbFilters[channel]
		if !exists {
			return nil, fmt.Errorf("%w: rgb filter map has no %q key", ErrMissingBand, channel)
		}
		img, err := ic.Img(band)
		if err != nil {
			return nil, err
		}
		rgb.Assignment[channel] = band
		rgb.Linear[i] = img.FloatGrid.Copy()
	}

	if len(rgbFilters) != len(rgbChannelNames) {
		return nil, fmt.Errorf("%w: rgb filter map has %d keys, want exactly R,G,B", ErrInvalidParameter, len(rgbFilters))
	}

	if policy == nil {
		policy = NewConfig().GetStretch()
	}
	if err := policy(rgb); err != nil {
		return nil, fmt.Errorf("stretch %s: %w", rgb, err)
	}

	ic.RGB = rgb
	return rgb, nil
}

// PlotRGBImage renders the most recent RGBImage for display: upscale
// to displayWidth with CatmullRom, annotate with the band
// assignment. Returns the annotated image and the raw RGBImage; the
// caller owns writing it anywhere (see WritePNG).
func (ic *ImageCollection)PlotRGBImage(displayWidth int) (image.Image, *RGBImage, error) {
	if ic.RGB == nil {
		return nil, nil, fmt.Errorf("PlotRGBImage: no RGB image composited yet")
	}
	if displayWidth < ic.Npix {
		displayWidth = ic.Npix
	}

	src := ic.RGB.ToImage()
	dst := image.NewRGBA64(image.Rectangle{Max: image.Point{displayWidth, displayWidth}})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	dc := gg.NewContextForImage(dst)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(fmt.Sprintf("R:%s G:%s B:%s, %g/pix",
		ic.RGB.Assignment["R"], ic.RGB.Assignment["G"], ic.RGB.Assignment["B"], ic.Resolution), 10, 20)

	return dc.Image(), ic.RGB, nil
}
