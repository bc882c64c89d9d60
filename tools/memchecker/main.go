package main

import (
	"fmt"
	"reflect"

	"github.com/kpfaulkner/phoenixvr-go/core"
	"github.com/kpfaulkner/phoenixvr-go/entropy"
	"github.com/kpfaulkner/phoenixvr-go/frame"
	"github.com/kpfaulkner/phoenixvr-go/render"
)

// displays sizes of the per picture structs to spot padding waste
func memStats(input any) {

	rType := reflect.TypeOf(input)
	fmt.Printf("Size of %s : %d bytes\n", rType.Name(), rType.Size())

	if rType.Kind() == reflect.Struct {
		for i := 0; i < rType.NumField(); i++ {
			field := rType.Field(i)
			fmt.Printf("  Name %s\n", field.Name)
			fmt.Printf("    Offset of    : %d bytes\n", field.Offset)
			fmt.Printf("    Size of      : %d bytes\n", field.Type.Size())
			fmt.Printf("    Alignment of : %d bytes\n", field.Type.Align())
			fmt.Println()
		}
	}
}

func main() {
	memStats(entropy.HuffmanModel{})
	memStats(frame.Quantisation{})
	memStats(frame.BlockDecoder{})
	memStats(frame.Planes{})
	memStats(core.Picture{})
	memStats(render.Renderer{})
	memStats(render.Angle{})
}
