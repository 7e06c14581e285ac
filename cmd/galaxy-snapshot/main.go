package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/gekko3d/galaxy"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func main() {
	opts := galaxy.Options{Width: 960, Height: 540}
	out := flag.String("out", "galaxy.png", "output PNG file")
	frames := flag.Int("frames", 1, "frames to simulate at 60 fps before capturing")
	caption := flag.Bool("caption", false, "print the parameters onto the image")
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(opts, *out, *frames, *caption); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts galaxy.Options, out string, frames int, caption bool) error {
	params, err := opts.Parameters()
	if err != nil {
		return err
	}

	app := galaxy.NewAppBuilder().
		UseModule(galaxy.LoggingModule{Prefix: "snapshot", Debug: opts.Debug}).
		UseModule(galaxy.TimeModule{Step: time.Second / 60}).
		UseModule(galaxy.ParametersModule{Initial: &params}).
		UseModule(galaxy.GalaxyModule{Async: opts.Async, Source: opts.Source()}).
		UseModule(galaxy.SunModule{}).
		UseModule(galaxy.AnimationModule{}).
		UseModule(galaxy.OrbitCameraModule{}).
		UseModule(galaxy.RasterModule{Width: opts.Width, Height: opts.Height}).
		Build()

	gs, _ := galaxy.Resource[galaxy.GalaxyState](app)
	defer gs.Close()
	app.RunFrames(max(frames, 1))
	for gs.Pending() {
		time.Sleep(5 * time.Millisecond)
		app.RunFrames(1)
	}
	if gs.Current == nil {
		p, _ := galaxy.Resource[galaxy.Parameters](app)
		return fmt.Errorf("no galaxy generated: %v", p.LastError)
	}

	rs, _ := galaxy.Resource[galaxy.RasterState](app)
	img := rs.Renderer.Image()
	if caption {
		drawCaption(img, fmt.Sprintf("count %d  branches %d  radius %.2f  spin %.2f",
			params.Count, params.Branches, params.Radius, params.Spin))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	app.Logger().Infof("wrote %s (%dx%d)", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func drawCaption(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(6, img.Bounds().Dy()-6),
	}
	d.DrawString(text)
}
