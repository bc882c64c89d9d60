package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strings"
	"time"

	"github.com/kpfaulkner/phoenixvr-go/cache"
	"github.com/kpfaulkner/phoenixvr-go/core"
	"github.com/kpfaulkner/phoenixvr-go/frame"
	"github.com/kpfaulkner/phoenixvr-go/imageformats"
	"github.com/kpfaulkner/phoenixvr-go/options"
	"github.com/kpfaulkner/phoenixvr-go/render"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func main() {
	infile := flag.String("i", "", "input vr file")
	outfile := flag.String("o", "", "output png file")
	az := flag.Float64("az", math.Pi, "camera azimuth in radians")
	el := flag.Float64("el", -math.Pi/2, "camera elevation in radians")
	fov := flag.Float64("fov", render.DefaultFOV, "field of view in radians")
	width := flag.Int("w", core.FlatWidth, "framebuffer width")
	height := flag.Int("h", core.FlatHeight, "framebuffer height")
	workers := flag.Int("workers", 1, "render bands in parallel")
	tiled := flag.Bool("tiled", false, "decode panoramas into the tiled atlas")
	atlas := flag.Bool("atlas", false, "write the decoded surface instead of a rendered view")
	cacheDir := flag.String("cache", "", "directory for cached surfaces")
	planes := flag.String("planes", "", "write the decoded Y, Cb and Cr planes as <prefix>-y.pgm etc")
	debug := flag.Bool("debug", false, "debug logging")
	cpuprofile := flag.Bool("cpuprofile", false, "write a cpu profile to the current directory")
	flag.Parse()

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	decoderOpts := []core.DecoderOption{
		core.WithOptions(&options.VROptions{Debug: *debug, TiledAtlas: *tiled}),
	}
	if *cacheDir != "" {
		c, err := cache.New(*cacheDir)
		if err != nil {
			log.Fatalf("Error opening cache: %v", err)
		}
		defer c.Close()
		decoderOpts = append(decoderOpts, core.WithSurfaceCache(c))
	}
	if *planes != "" {
		decoderOpts = append(decoderOpts, core.WithPlaneHook(func(p *frame.Planes) error {
			return writePlanes(*planes, p)
		}))
	}
	decoder, err := core.NewDecoder(decoderOpts...)
	if err != nil {
		log.Fatalf("Error creating decoder: %v", err)
	}

	viewer, err := render.NewViewer(
		render.WithDecoder(decoder),
		render.WithRenderer(render.NewRenderer(render.WithWorkers(*workers))),
	)
	if err != nil {
		log.Fatalf("Error creating viewer: %v", err)
	}

	f, err := os.Open(*infile)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	if err := viewer.Load(f); err != nil {
		log.Fatalf("Error decoding: %v", err)
	}
	pic := viewer.Picture()
	fmt.Printf("decoding took %d ms\n", time.Since(start).Milliseconds())
	fmt.Printf("%s picture, quality %d, surface %v\n", pic.Kind, pic.Quality, pic.Image.Bounds())

	out := pic.Image
	if !*atlas {
		cam := viewer.Camera()
		cam.Azimuth.Set(*az)
		cam.Elevation.Set(*el)
		cam.FOV = *fov

		fb := image.NewRGBA(image.Rect(0, 0, *width, *height))
		startRender := time.Now()
		if err := viewer.Render(fb); err != nil {
			log.Fatalf("Error rendering: %v", err)
		}
		fmt.Printf("rendering took %d ms\n", time.Since(startRender).Milliseconds())
		out = fb
	}

	buf := new(bytes.Buffer)
	if strings.HasSuffix(*outfile, ".ppm") {
		err = imageformats.WritePPM(out, buf)
	} else {
		err = png.Encode(buf, out)
	}
	if err != nil {
		log.Fatalf("Error encoding output: %v", err)
	}
	if err := os.WriteFile(*outfile, buf.Bytes(), 0666); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}

func writePlanes(prefix string, p *frame.Planes) error {
	names := [frame.NumChannels]string{"y", "cb", "cr"}
	for c, name := range names {
		buf := new(bytes.Buffer)
		if err := imageformats.WritePGM(p.Channels[c], buf); err != nil {
			return err
		}
		if err := os.WriteFile(fmt.Sprintf("%s-%s.pgm", prefix, name), buf.Bytes(), 0666); err != nil {
			return err
		}
	}
	return nil
}
