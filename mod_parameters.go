package galaxy

import (
	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// Parameters is the canonical parameter store. Generators only ever see
// snapshots taken from it.
type Parameters struct {
	current core.ParameterSet
	pending []core.Edit
	dirty   core.Target

	LastError error
	Revision  uint64
}

func NewParameters(initial core.ParameterSet) (*Parameters, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Parameters{current: initial, dirty: core.TargetAll}, nil
}

func (p *Parameters) Snapshot() core.ParameterSet {
	return p.current
}

// Commit queues a finished edit; it is applied on the next parameters pass.
func (p *Parameters) Commit(e core.Edit) {
	p.pending = append(p.pending, e)
}

// Apply validates and applies e immediately. A rejected edit leaves the
// parameters unchanged and is recorded in LastError. Revision changes either way.
func (p *Parameters) Apply(e core.Edit) (core.Target, error) {
	next, target, err := p.current.Apply(e)
	if err != nil {
		p.LastError = err
		p.Revision++
		return core.TargetNone, err
	}
	p.current = next
	p.dirty |= target
	p.LastError = nil
	p.Revision++
	return target, nil
}

// Replace swaps the whole set, as when a preset is loaded.
func (p *Parameters) Replace(set core.ParameterSet) error {
	if err := set.Validate(); err != nil {
		p.LastError = err
		p.Revision++
		return err
	}
	p.current = set
	p.dirty = core.TargetAll
	p.LastError = nil
	p.Revision++
	return nil
}

// Fail records a failure reported by a generator.
func (p *Parameters) Fail(err error) {
	p.LastError = err
	p.Revision++
}

func (p *Parameters) RequestRegeneration(t core.Target) {
	p.dirty |= t
}

func (p *Parameters) Dirty() core.Target {
	return p.dirty
}

// ConsumeDirty reports whether t was marked dirty and clears it.
func (p *Parameters) ConsumeDirty(t core.Target) bool {
	if !p.dirty.Has(t) {
		return false
	}
	p.dirty &^= t
	return true
}

type ParametersModule struct {
	Initial *core.ParameterSet
}

func (m ParametersModule) Install(app *App, cmd *Commands) {
	initial := core.DefaultParameters()
	if m.Initial != nil {
		initial = *m.Initial
	}
	params, err := NewParameters(initial)
	if err != nil {
		cmd.Logger().Errorf("invalid initial parameters: %v", err)
		panic(err)
	}
	cmd.AddResources(params)
	cmd.UseSystem(System(parametersSystem).InStage(PostUpdate))
}

func parametersSystem(params *Parameters, cmd *Commands) {
	if len(params.pending) == 0 {
		return
	}
	log := cmd.Logger()
	for _, e := range params.pending {
		target, err := params.Apply(e)
		if err != nil {
			log.Warnf("rejected edit %s: %v", e.Name, err)
			continue
		}
		log.Debugf("edit %s applied, regenerating %s", e.Name, target)
	}
	params.pending = params.pending[:0]
}
