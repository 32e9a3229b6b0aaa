package main

import (
	"fmt"
	"os"

	"github.com/jwulff/artstudio-go/internal/codec"
	"github.com/jwulff/artstudio-go/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug <buffer.raw> [out.png]")
		os.Exit(1)
	}
	path := os.Args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	buf, err := codec.DecodeRaw(f)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opaque, transparent := 0, 0
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, _ := buf.At(x, y)
			switch c.A {
			case 255:
				opaque++
			case 0:
				transparent++
			}
		}
	}
	total := buf.Width() * buf.Height()

	fmt.Println("Buffer structure:")
	fmt.Printf("  Magic: %s\n", codec.Magic)
	fmt.Printf("  Version: %d\n", codec.Version)
	fmt.Printf("  Width: %d\n", buf.Width())
	fmt.Printf("  Height: %d\n", buf.Height())
	fmt.Printf("  Pixel data: %d bytes\n", len(buf.Pix()))
	fmt.Printf("  Opaque pixels: %d\n", opaque)
	fmt.Printf("  Transparent pixels: %d\n", transparent)
	fmt.Printf("  Partial alpha: %d\n", total-opaque-transparent)

	fmt.Println()
	if err := render.Preview(os.Stdout, buf, 48); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		return
	}
	out, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := render.EncodePNG(out, buf); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nWrote %s\n", os.Args[2])
}
