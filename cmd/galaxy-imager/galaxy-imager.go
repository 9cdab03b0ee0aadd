package main

import(
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abworrall/galaxy-imager/pkg/gcolor"
	"github.com/abworrall/galaxy-imager/pkg/imaging"
)

var(
	fVerbosity int
	fConfigFile string
	fStretch string
	fPSFRounds int
	fDisplayWidth int
	fAsciiBand string
	fGrayscale bool
	fFalseColor bool
	fRamp string
	fOutPrefix string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")

	flag.StringVar(&fConfigFile, "config", "", "yaml display config, replacing the scene's")
	flag.StringVar(&fStretch, "stretch", "", "how to stretch RGB channels for display: "+imaging.ListStretches())
	flag.IntVar(&fPSFRounds, "psf", -1, "how many blur passes to apply as a PSF (-1: take from scene)")
	flag.IntVar(&fDisplayWidth, "width", 0, "pixel width of the output RGB plot (0: take from scene)")
	flag.StringVar(&fAsciiBand, "ascii", "", "print an ASCII rendering of this band to stdout")
	flag.BoolVar(&fGrayscale, "gray", false, "also write a grayscale PNG per band")
	flag.BoolVar(&fFalseColor, "falsecolor", false, "also write a false-color PNG per band")
	flag.StringVar(&fRamp, "ramp", "heat", "false-color ramp: heat or cool")
	flag.StringVar(&fOutPrefix, "out", "galaxy", "prefix for output files")
	flag.Parse()

	log.Printf("galaxy-imager starting\n")
}

func main() {
	if flag.NArg() != 1 {
		log.Fatal("usage: galaxy-imager [flags] scene.yaml")
	}

	scene, err := imaging.LoadScene(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if fConfigFile != "" {
		config, err := imaging.LoadConfig(fConfigFile)
		if err != nil {
			log.Fatal(err)
		}
		scene.Config = config
	}

	if fStretch != ""      { scene.Config.Stretch = fStretch }
	if fPSFRounds >= 0     { scene.Config.PSFRounds = fPSFRounds }
	if fDisplayWidth > 0   { scene.Config.DisplayWidth = fDisplayWidth }
	scene.Config.Verbosity = fVerbosity

	if scene.Config.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", scene.Config.AsYaml())
	}

	model, err := scene.Morphology.Build()
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Imaging %s over %v", model, scene.Photometry.Bands())

	galaxy := imaging.NewGalaxy(model, scene.Photometry)
	img, err := galaxy.GetImagesLuminosity(scene.Geometry.Resolution, scene.Geometry.FOV)
	if err != nil {
		log.Fatal(err)
	}

	if scene.Config.PSFRounds > 0 {
		log.Printf("Applying PSF (%d blur passes)", scene.Config.PSFRounds)
		if err := img.ApplyPSF(scene.Config.PSFRounds); err != nil {
			log.Fatal(err)
		}
	}

	if scene.Config.Verbosity > 0 {
		for _, band := range img.Bands() {
			i, _ := img.Img(band)
			log.Printf("%s flux histogram:\n%v", band, i.FluxHistogram())
		}
	}

	if _, err := img.MakeRGBImage(scene.Config.RGBFilters, scene.Config.GetStretch()); err != nil {
		log.Fatal(err)
	}

	plot, _, err := img.PlotRGBImage(scene.Config.DisplayWidth)
	if err != nil {
		log.Fatal(err)
	}
	if err := imaging.WritePNG(plot, fOutPrefix+"-rgb.png"); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s-rgb.png", fOutPrefix)

	ramp := gcolor.HeatRamp()
	switch fRamp {
	case "heat", "":
	case "cool":
		ramp = gcolor.CoolRamp()
	default:
		log.Fatalf("unknown ramp %q, want heat or cool", fRamp)
	}

	for _, band := range img.Bands() {
		if err := img.WriteBandToHDR(band, fmt.Sprintf("%s-%s.hdr", fOutPrefix, band)); err != nil {
			log.Fatal(err)
		}
		if err := img.WriteBandToTIFF(band, fmt.Sprintf("%s-%s.tif", fOutPrefix, band)); err != nil {
			log.Fatal(err)
		}

		i, _ := img.Img(band)
		if fGrayscale {
			if err := i.ToImg(band, fmt.Sprintf("%s-%s-gray.png", fOutPrefix, band)); err != nil {
				log.Fatal(err)
			}
		}
		if fFalseColor {
			fc := gcolor.Render(&i.FloatGrid, ramp)
			if err := imaging.WritePNG(fc, fmt.Sprintf("%s-%s-falsecolor.png", fOutPrefix, band)); err != nil {
				log.Fatal(err)
			}
		}
	}
	log.Printf("Wrote per-band .hdr and .tif files")

	if fAsciiBand != "" {
		i, err := img.Img(fAsciiBand)
		if err != nil {
			log.Fatal(err)
		}
		if err := i.PrintASCII(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}
