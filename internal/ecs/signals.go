package ecs

import "github.com/barhaim/arkgo/internal/ecs/signal"

// ComponentEvent is the payload for the untyped on_add/on_remove signals:
// "some entity gained/lost a component of this type id", without the
// caller needing to know T.
type ComponentEvent struct {
	Entity Entity
	TypeID int
}

// ClonePair is the payload for on_clone<T>: the freshly cloned entity and
// the source it was cloned from.
type ClonePair struct {
	New Entity
	Old Entity
}

// sinkSet holds every signal a Registry exposes. Typed sinks (add/remove/
// clone) are indexed directly by component type id rather than by
// reflect.Type, since meta already hands out small dense ids; no map
// needed on the hot add/remove path.
type sinkSet struct {
	onCreate  *signal.Sink[Entity]
	onDestroy *signal.Sink[Entity]

	onAddGeneric    *signal.Sink[ComponentEvent]
	onRemoveGeneric *signal.Sink[ComponentEvent]

	addByType    [MaxComponentTypes]*signal.Sink[Entity]
	removeByType [MaxComponentTypes]*signal.Sink[Entity]
	cloneByType  [MaxComponentTypes]*signal.Sink[ClonePair]
}

func newSinkSet() *sinkSet {
	return &sinkSet{
		onCreate:        signal.NewSink[Entity](),
		onDestroy:       signal.NewSink[Entity](),
		onAddGeneric:    signal.NewSink[ComponentEvent](),
		onRemoveGeneric: signal.NewSink[ComponentEvent](),
	}
}

func (s *sinkSet) addSink(typeID int) *signal.Sink[Entity] {
	if s.addByType[typeID] == nil {
		s.addByType[typeID] = signal.NewSink[Entity]()
	}
	return s.addByType[typeID]
}

func (s *sinkSet) removeSink(typeID int) *signal.Sink[Entity] {
	if s.removeByType[typeID] == nil {
		s.removeByType[typeID] = signal.NewSink[Entity]()
	}
	return s.removeByType[typeID]
}

func (s *sinkSet) cloneSink(typeID int) *signal.Sink[ClonePair] {
	if s.cloneByType[typeID] == nil {
		s.cloneByType[typeID] = signal.NewSink[ClonePair]()
	}
	return s.cloneByType[typeID]
}
