package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/galaxy"
)

func main() {
	opts := galaxy.Options{Width: 1280, Height: 720}
	preset := flag.String("save", "galaxy-preset.json", "file written by Ctrl+S")
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	params, err := opts.Parameters()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	app := galaxy.NewAppBuilder().
		UseModule(galaxy.LoggingModule{Prefix: "galaxy", Debug: opts.Debug}).
		UseModule(galaxy.TimeModule{}).
		UseModule(galaxy.NewPlatformWindow(opts.Width, opts.Height, "Galaxy")).
		UseModule(galaxy.InputModule{}).
		UseModule(galaxy.ParametersModule{Initial: &params}).
		UseModule(galaxy.GalaxyModule{Async: opts.Async, Source: opts.Source()}).
		UseModule(galaxy.SunModule{}).
		UseModule(galaxy.AnimationModule{}).
		UseModule(galaxy.OrbitCameraModule{Mouse: true}).
		UseModule(galaxy.PanelModule{PresetPath: *preset}).
		UseModule(galaxy.RendererModule{}).
		Build()

	app.Run()

	if gs, ok := galaxy.Resource[galaxy.GalaxyState](app); ok {
		gs.Close()
	}
	if rs, ok := galaxy.Resource[galaxy.RendererState](app); ok {
		rs.App.Release()
	}
	if ws, ok := galaxy.Resource[galaxy.WindowState](app); ok {
		ws.Destroy()
	}
}
