package main

import (
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/kpfaulkner/phoenixvr-go/core"
	"github.com/kpfaulkner/phoenixvr-go/frame"
	"github.com/kpfaulkner/phoenixvr-go/render"
	"github.com/kpfaulkner/phoenixvr-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func main() {
	count := flag.Int("n", 10, "decodes per file")
	frames := flag.Int("frames", 36, "frames rendered per panorama, one full turn")
	workers := flag.Int("workers", 1, "render bands in parallel")
	mode := flag.String("profile", "cpu", "cpu, mem or none")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileHeap, profile.ProfilePath(".")).Stop()
	}

	decoder, err := core.NewDecoder()
	if err != nil {
		log.Fatalf("Error creating decoder: %v", err)
	}
	renderer := render.NewRenderer(render.WithWorkers(*workers))
	dst := image.NewRGBA(image.Rect(0, 0, core.FlatWidth, core.FlatHeight))
	iterations := util.Max(*count, 1)

	for _, file := range flag.Args() {
		fmt.Printf("file %s\n", file)
		data, err := os.ReadFile(file)
		if err != nil {
			log.Errorf("Error opening file: %v", err)
			continue
		}

		start := time.Now()
		var pic *core.Picture
		for i := 0; i < iterations; i++ {
			if pic, err = decoder.DecodeBytes(data); err != nil {
				log.Errorf("Error decoding: %v", err)
				break
			}
		}
		if err != nil {
			continue
		}
		fmt.Printf("decoding took %d ms per picture\n", time.Since(start).Milliseconds()/int64(iterations))

		if !pic.IsPanorama() || *frames <= 0 {
			continue
		}
		cam := render.NewCamera()
		start = time.Now()
		for i := 0; i < *frames; i++ {
			cam.Turn(2*math.Pi/float64(*frames), 0)
			if err := renderer.Render(dst, pic, cam); err != nil {
				log.Errorf("Error rendering: %v", err)
				break
			}
		}
		fmt.Printf("rendering took %d us per frame\n", time.Since(start).Microseconds()/int64(*frames))
	}

	hits, misses := frame.PlanePoolMetrics()
	fmt.Printf("plane pool hits %d misses %d\n", hits, misses)
}
