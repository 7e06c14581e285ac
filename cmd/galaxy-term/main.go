package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/galaxy"
)

func main() {
	opts := galaxy.Options{}
	preset := flag.String("save", "galaxy-preset.json", "file written by Ctrl+S")
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	params, err := opts.Parameters()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// logs would tear the screen; they go to a file when debugging
	logOut := os.DevNull
	if opts.Debug {
		logOut = "galaxy-term.log"
	}
	logFile, err := os.Create(logOut)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	app := galaxy.NewAppBuilder().
		UseModule(galaxy.LoggingModule{Prefix: "galaxy-term", Debug: opts.Debug, Output: logFile}).
		UseModule(galaxy.TimeModule{}).
		UseModule(galaxy.ParametersModule{Initial: &params}).
		UseModule(galaxy.GalaxyModule{Async: true, Source: opts.Source()}).
		UseModule(galaxy.SunModule{}).
		UseModule(galaxy.AnimationModule{}).
		UseModule(galaxy.OrbitCameraModule{}).
		UseModule(galaxy.RasterModule{}).
		UseModule(galaxy.TerminalModule{PresetPath: *preset}).
		Build()

	ts, _ := galaxy.Resource[galaxy.TerminalState](app)
	defer ts.Close()
	gs, _ := galaxy.Resource[galaxy.GalaxyState](app)
	defer gs.Close()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if !app.RunFrames(1) {
			return
		}
	}
}
