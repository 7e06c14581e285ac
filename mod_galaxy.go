package galaxy

import (
	"sync"
	"time"

	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// GalaxyModule regenerates the point cloud whenever the galaxy parameters
// change. With Async set, generation runs off the frame thread and only the
// newest result is ever shown.
type GalaxyModule struct {
	Async  bool
	Source core.RandomSource
}

type GalaxyState struct {
	slot   *Slot
	async  bool
	source core.RandomSource
	// custom sources are not safe for concurrent use
	sourceMu sync.Mutex

	requested uint64
	settled   uint64
	results   chan galaxyResult
	done      chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup

	Current     *GalaxyPoints
	Generations int
	Dropped     int
}

type galaxyResult struct {
	seq    uint64
	params core.ParameterSet
	buf    *core.ParticleBuffer
	err    error
	took   time.Duration
}

func (mod GalaxyModule) Install(app *App, cmd *Commands) {
	state := &GalaxyState{
		slot:    cmd.NewSlot("galaxy"),
		async:   mod.Async,
		source:  mod.Source,
		results: make(chan galaxyResult, 4),
		done:    make(chan struct{}),
	}
	cmd.AddResources(state)
	cmd.UseSystem(System(galaxySystem).InStage(PostUpdate))
}

// Pending reports whether a requested generation has not been settled yet.
func (s *GalaxyState) Pending() bool {
	return s.settled < s.requested
}

func (s *GalaxyState) generate(seq uint64, p core.ParameterSet) galaxyResult {
	start := time.Now()
	var buf *core.ParticleBuffer
	var err error
	if s.source != nil {
		s.sourceMu.Lock()
		buf, err = core.GenerateGalaxy(p, s.source)
		s.sourceMu.Unlock()
	} else {
		buf, err = core.GenerateGalaxy(p, nil)
	}
	return galaxyResult{seq: seq, params: p, buf: buf, err: err, took: time.Since(start)}
}

func (s *GalaxyState) settle(res galaxyResult, params *Parameters, log Logger) {
	if res.seq < s.requested {
		// a newer request superseded this one
		res.buf.Release()
		s.Dropped++
		log.Debugf("galaxy: dropped stale result #%d", res.seq)
		if res.seq > s.settled {
			s.settled = res.seq
		}
		return
	}
	s.settled = res.seq
	if res.err != nil {
		params.Fail(res.err)
		log.Warnf("galaxy generation failed, keeping previous buffer: %v", res.err)
		return
	}
	points := NewGalaxyPoints(res.buf, res.params.Size)
	s.slot.Replace(points, IdentityTransform())
	s.Current = points
	s.Generations++
	log.Infof("galaxy: %d stars in %s", res.buf.Len(), res.took)
}

func (s *GalaxyState) drain(params *Parameters, log Logger) {
	for {
		select {
		case res := <-s.results:
			s.settle(res, params, log)
		default:
			return
		}
	}
}

func galaxySystem(params *Parameters, state *GalaxyState, cmd *Commands) {
	log := cmd.Logger()
	if state.async {
		state.drain(params, log)
	}
	if !params.ConsumeDirty(core.TargetGalaxy) {
		return
	}

	state.requested++
	seq, snapshot := state.requested, params.Snapshot()
	if !state.async {
		state.settle(state.generate(seq, snapshot), params, log)
		return
	}
	state.spawn(seq, snapshot)
}

func (s *GalaxyState) spawn(seq uint64, p core.ParameterSet) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()
		res := s.generate(seq, p)
		select {
		case s.results <- res:
		case <-s.done:
			res.buf.Release()
		}
	}()
}

// Close stops accepting background results and waits for running
// generations to finish. Call it once the app has stopped.
func (s *GalaxyState) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.workers.Wait()
}
