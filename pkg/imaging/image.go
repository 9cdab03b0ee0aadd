package imaging

import(
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/galaxy-imager/pkg/gmath"
)

// An Image is one band's flux distributed over the collection's
// pixel grid. The pixel values are linear physical flux, not display
// values; sum over all pixels == the band's scalar photometry.
//
// It implements image.Image and hdr.Image, so the hdr codecs and
// tonemapping operators can consume it directly.
type Image struct {
	Band string
	gmath.FloatGrid
}

func NewImage(band string, grid gmath.FloatGrid) *Image {
	return &Image{Band: band, FloatGrid: grid}
}

func (img *Image)String() string {
	return fmt.Sprintf("Image[%s, %s]", img.Band, img.Stats())
}

// Implement image.Image
func (img *Image)ColorModel() color.Model { return hdrcolor.RGBModel }
func (img *Image)Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{img.Dx(), img.Dy()}}
}
func (img *Image)At(x, y int) color.Color { return img.HDRAt(x, y) }

// Implement hdr.Image - flux rendered as gray
func (img *Image)HDRAt(x, y int) hdrcolor.Color {
	v := img.Get(x, y)
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (img *Image)Size() int { return img.Dx() * img.Dy() }

var asciiRamp = []byte(" .:-=+*#%@")

// PrintASCII writes a crude character rendering of the image,
// bucketing pixel flux against the image's own min/max. A diagnostic
// for eyeballing morphology in a terminal; the RGB pipeline never
// touches it.
func (img *Image)PrintASCII(w io.Writer) error {
	min, max := img.MinMax()
	spread := max - min

	row := make([]byte, img.Dx()+1)
	row[img.Dx()] = '\n'

	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			i := 0
			if spread > 0.0 {
				i = int((img.Get(x, y) - min) / spread * float64(len(asciiRamp)))
				if i >= len(asciiRamp) { i = len(asciiRamp)-1 }
			}
			row[x] = asciiRamp[i]
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("ascii render %s: %v", img.Band, err)
		}
	}

	return nil
}

// FluxHistogram buckets each pixel's flux, in log2 steps relative to
// the brightest pixel, covering 16 octaves. Empty pixels are skipped.
// Handy at high verbosity for seeing how concentrated a band is.
func (img *Image)FluxHistogram() histogram.Histogram {
	h := histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256}

	_, max := img.MinMax()
	if max <= 0.0 {
		return h
	}

	for x:=0; x<img.Dx(); x++ {
		for y:=0; y<img.Dy(); y++ {
			v := img.Get(x, y)
			if v <= 0.0 {
				continue
			}
			octavesDown := -1 * math.Log2(v/max) // 0 == brightest
			if octavesDown > 16.0 {
				continue
			}
			h.Add(histogram.ScalarVal(int((16.0 - octavesDown) * 16.0)))
		}
	}

	return h
}
