package we

type EntityType string

func (et EntityType) String() string {
	return string(et)
}

type EntityTyped interface {
	EntityType() EntityType
}

func EntityTypeOf(state any) EntityType {
	if named, ok := state.(EntityTyped); ok {
		return named.EntityType()
	}

	return EntityType(NameOf(state))
}

// Entity is a consistent view of a piece of state: the state and the revision it
// was captured at.
type Entity[T any] struct {
	Type     EntityType
	Revision Revision
	State    T
}

func NewEntity[T any](revision Revision, state T) Entity[T] {
	return Entity[T]{
		Type:     EntityTypeOf(state),
		Revision: revision,
		State:    state,
	}
}

func (e *Entity[T]) Initialized() bool {
	return e.Revision != InitialRevision
}
