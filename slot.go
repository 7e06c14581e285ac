package galaxy

// Slot owns at most one entity. Replace queues the removal of the previous
// occupant ahead of the new one, so the flush releases the old buffers before
// the replacement becomes visible.
type Slot struct {
	Name     string
	app      *App
	current  EntityId
	occupied bool
}

func (cmd *Commands) NewSlot(name string) *Slot {
	return &Slot{Name: name, app: cmd.app}
}

func (sl *Slot) Replace(components ...any) EntityId {
	cmd := sl.app.Commands()
	if sl.occupied {
		cmd.RemoveEntity(sl.current)
	}
	sl.current = cmd.AddEntity(components...)
	sl.occupied = true
	return sl.current
}

func (sl *Slot) Clear() {
	if !sl.occupied {
		return
	}
	sl.app.Commands().RemoveEntity(sl.current)
	sl.occupied = false
}

func (sl *Slot) Current() (EntityId, bool) {
	return sl.current, sl.occupied
}
