// Command swgldemo renders a TOML scene with the swgl software rasterizer.
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/swgl"
)

//go:embed scene.toml
var defaultScene []byte

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (built-in scene if empty)")
		output    = flag.String("output", "demo.png", "output file")
		verbose   = flag.Bool("v", false, "log rejected calls")
	)
	flag.Parse()

	if *verbose {
		swgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if err := run(s, *output); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d quads)\n", *output, s.Width, s.Height, len(s.Quads))
}

func loadScene(path string) (*Scene, error) {
	var r io.Reader = bytes.NewReader(defaultScene)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open scene: %w", err)
		}
		defer f.Close()
		r = f
	}
	return DecodeScene(r)
}

func run(s *Scene, output string) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
