package imaging

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/tiff"
)

// Exporters for the things a run produces. The RGB composite goes
// out as PNG; per-band linear flux goes out as Radiance RGBE (keeps
// the full dynamic range for downstream HDR tools) or as 16-bit
// grayscale TIFF.

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteBandToHDR writes one band's linear flux as an RGBE file.
func (ic *ImageCollection)WriteBandToHDR(band, filename string) error {
	img, err := ic.Img(band)
	if err != nil {
		return err
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, img); err != nil {
			return fmt.Errorf("encoding RGBE '%s': %v", filename, err)
		}
		return nil
	}
}

// WriteBandToTIFF writes one band as 16-bit grayscale, linearly
// scaled against the band's own max.
func (ic *ImageCollection)WriteBandToTIFF(band, filename string) error {
	img, err := ic.Img(band)
	if err != nil {
		return err
	}

	_, max := img.MinMax()
	if max <= 0.0 {
		max = 1.0
	}

	gray := image.NewGray16(img.Bounds())
	for x:=0; x<img.Dx(); x++ {
		for y:=0; y<img.Dy(); y++ {
			gray.SetGray16(x, y, grayPix(img.Get(x, y) / max))
		}
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := tiff.Encode(writer, gray, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("encoding TIFF '%s': %v", filename, err)
		}
		return nil
	}
}

func grayPix(f float64) color.Gray16 {
	if f < 0.0 { f = 0.0 }
	if f > 1.0 { f = 1.0 }
	return color.Gray16{Y: uint16(f * 0xFFFF)}
}
