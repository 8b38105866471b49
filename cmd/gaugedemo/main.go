// gaugedemo writes a needle-sweep frame sequence and an arrow sampler
// as PNG files, exercising both widgets without any display loop.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fideuardo/gaugekit/arrow"
	"github.com/fideuardo/gaugekit/gauge"
	"github.com/fideuardo/gaugekit/internal/logging"
)

func main() {
	outDir := flag.String("out", "out", "output directory for PNG files")
	frames := flag.Int("frames", 40, "number of sweep frames")
	flag.Parse()

	logging.Init(logging.FromEnv())

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("ensure out dir", "err", err)
		os.Exit(1)
	}

	if err := writeSweep(*outDir, *frames); err != nil {
		slog.Error("gauge sweep", "err", err)
		os.Exit(1)
	}
	if err := writeArrows(*outDir); err != nil {
		slog.Error("arrow sampler", "err", err)
		os.Exit(1)
	}
	slog.Info("demo written", "dir", *outDir, "frames", *frames)
}

// writeSweep renders the reference km/h dial bouncing from Min to Max
// and back, one PNG per frame.
func writeSweep(dir string, frames int) error {
	background := image.NewRGBA(image.Rect(0, 0, 600, 400))
	draw.Draw(background, background.Bounds(),
		&image.Uniform{C: color.RGBA{30, 30, 30, 255}}, image.Point{}, draw.Src)

	cfg := gauge.DefaultConfig()
	cfg.Units = "km/h"
	cfg.Phase = 180

	g, err := gauge.New(background, cfg)
	if err != nil {
		return fmt.Errorf("build gauge: %w", err)
	}

	if frames < 2 {
		frames = 2
	}
	span := cfg.Max - cfg.Min
	step := 2 * span / frames
	if step < 1 {
		step = 1
	}

	value := cfg.Min
	increasing := true
	for i := 0; i < frames; i++ {
		g.SetValue(value)
		if err := writePNG(filepath.Join(dir, fmt.Sprintf("gauge-%03d.png", i)), g.Render()); err != nil {
			return err
		}

		if increasing {
			value += step
			if value >= cfg.Max {
				increasing = false
			}
		} else {
			value -= step
			if value <= cfg.Min {
				increasing = true
			}
		}
	}
	return nil
}

// writeArrows draws the three reference arrows (solid round, solid
// square, open) onto a white canvas.
func writeArrows(dir string) error {
	canvas := image.NewRGBA(image.Rect(0, 0, 300, 150))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	d := arrow.NewDrawer(canvas)

	d.Draw(image.Pt(250, 50), image.Pt(30, 50), arrow.Options{
		TipLength: 0.2,
		Color:     color.RGBA{255, 0, 0, 255},
		Thickness: 8,
	})
	d.Draw(image.Pt(100, 80), image.Pt(150, 80), arrow.Options{
		TipLength: 0.6,
		Color:     color.RGBA{0, 255, 0, 255},
		Thickness: 10,
		Cap:       arrow.CapSquare,
	})
	d.Draw(image.Pt(30, 110), image.Pt(250, 110), arrow.Options{
		TipLength: 0.2,
		Color:     color.RGBA{0, 0, 255, 255},
		Thickness: 8,
		Head:      arrow.HeadOpen,
	})

	return writePNG(filepath.Join(dir, "arrows.png"), d.Image())
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}
