package galaxy

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// Options are the settings shared by the command line tools.
type Options struct {
	Preset string
	Seed   uint64
	Count  int
	Width  int
	Height int
	Async  bool
	Debug  bool
}

// RegisterFlags binds the shared flags to fs. DEBUG in the environment turns
// on debug logging as well.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Preset, "preset", "", "load initial parameters from a JSON preset")
	fs.Uint64Var(&o.Seed, "seed", 0, "seed for reproducible galaxies (0 uses the process source)")
	fs.IntVar(&o.Count, "count", -1, "override the particle count")
	fs.IntVar(&o.Width, "width", o.Width, "width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "height in pixels")
	fs.BoolVar(&o.Async, "async", false, "generate galaxies off the frame thread")
	fs.BoolVar(&o.Debug, "debug", os.Getenv("DEBUG") != "", "enable debug logging")
}

// Parameters resolves the initial parameter set: defaults, then the preset,
// then the count override.
func (o Options) Parameters() (core.ParameterSet, error) {
	p := core.DefaultParameters()
	if o.Preset != "" {
		loaded, err := LoadPreset(o.Preset)
		if err != nil {
			return p, err
		}
		p = loaded
	}
	if o.Count >= 0 {
		p.Count = o.Count
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("initial parameters: %w", err)
	}
	return p, nil
}

// Source returns the random source for galaxy generation.
func (o Options) Source() core.RandomSource {
	if o.Seed == 0 {
		return core.ProcessSource()
	}
	return core.NewSeededSource(o.Seed)
}
