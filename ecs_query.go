package galaxy

import (
	"reflect"
	"slices"
)

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }

// Map visits every entity holding A in ascending id order until m returns
// false. Types listed in optionals may be missing, in which case m gets nil.
func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	var matches []match
	for _, arch := range q.ecs.archetypes {
		if !archetypeHas(arch, opt, id1) {
			continue
		}
		matches = appendMatches(matches, arch)
	}
	sortMatches(matches)

	for _, mt := range matches {
		a := component[A](mt, id1)
		if !m(mt.eid, a) {
			return
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	var matches []match
	for _, arch := range q.ecs.archetypes {
		if !archetypeHas(arch, opt, id1, id2) {
			continue
		}
		matches = appendMatches(matches, arch)
	}
	sortMatches(matches)

	for _, mt := range matches {
		a := component[A](mt, id1)
		b := component[B](mt, id2)
		if !m(mt.eid, a, b) {
			return
		}
	}
}

type match struct {
	eid  EntityId
	arch *archetype
	row  row
}

func archetypeHas(arch *archetype, opt set[componentId], ids ...componentId) bool {
	for _, id := range ids {
		if _, ok := arch.componentData[id]; ok {
			continue
		}
		if _, ok := opt[id]; !ok {
			return false
		}
	}
	return true
}

func appendMatches(matches []match, arch *archetype) []match {
	for eid, r := range arch.entities {
		matches = append(matches, match{eid: eid, arch: arch, row: r})
	}
	return matches
}

func sortMatches(matches []match) {
	slices.SortFunc(matches, func(a, b match) int {
		switch {
		case a.eid < b.eid:
			return -1
		case a.eid > b.eid:
			return 1
		}
		return 0
	})
}

func component[T any](mt match, id componentId) *T {
	data, ok := mt.arch.componentData[id]
	if !ok {
		return nil
	}
	return &data.([]T)[mt.row]
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		res[ecs.getComponentId(t)] = struct{}{}
	}
	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}
