package model

// Mode is the single state value of an editing workflow. Exactly one variant
// is active at a time, so "editing and adding at once" cannot be represented.
type Mode interface {
	mode()
	String() string
}

// Closed means the workflow is idle.
type Closed struct{}

// Adding means a new entity is being entered.
type Adding struct{}

// Editing means the entity with ID is being changed.
type Editing struct {
	ID string
}

// Confirming holds data awaiting the user's go-ahead.
type Confirming[T any] struct {
	Data T
}

func (Closed) mode()        {}
func (Adding) mode()        {}
func (Editing) mode()       {}
func (Confirming[T]) mode() {}

func (Closed) String() string        { return "closed" }
func (Adding) String() string        { return "adding" }
func (e Editing) String() string     { return "editing " + e.ID }
func (Confirming[T]) String() string { return "confirming" }

// IsOpen reports whether m is anything but Closed.
func IsOpen(m Mode) bool {
	if m == nil {
		return false
	}
	_, closed := m.(Closed)
	return !closed
}
