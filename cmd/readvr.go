package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kpfaulkner/phoenixvr-go/core"
	log "github.com/sirupsen/logrus"
)

func main() {
	infile := flag.String("i", "", "input vr file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if *infile == "" {
		fmt.Printf("input file must be specified\n")
		os.Exit(1)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	data, err := os.ReadFile(*infile)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}

	container, err := core.ParseContainer(data)
	if err != nil {
		log.Fatalf("Error parsing container: %v", err)
	}
	fmt.Printf("file size %d, %d chunks\n", container.FileSize, len(container.Chunks))
	for _, chunk := range container.Chunks {
		fmt.Printf("  %s\n", chunk)
		if !chunk.IsPicture() {
			continue
		}
		payload, err := core.SplitPayload(chunk.Picture.Payload)
		if err != nil {
			fmt.Printf("    bad payload: %v\n", err)
			continue
		}
		fmt.Printf("    huffman %d bytes -> %d symbols, ac %d bytes, dc %d bytes\n",
			len(payload.Huffman), payload.UnpackedCount, len(payload.AC)-len(payload.DC)-4, len(payload.DC))
	}
}
