package core

import "github.com/google/uuid"

// ID represents a domain identifier.
type ID string

// NewID creates a time-ordered identifier using UUID v7, falling back to v4
// when v7 generation is unavailable.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation.
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id ID) IsEmpty() bool {
	return id == ""
}

// AnalysisID identifies one completed analysis run.
type AnalysisID ID

// NewAnalysisID creates a fresh analysis identifier.
func NewAnalysisID() AnalysisID {
	return AnalysisID(NewID())
}

func (id AnalysisID) String() string { return ID(id).String() }

// IsEmpty checks if the ID is empty.
func (id AnalysisID) IsEmpty() bool { return ID(id).IsEmpty() }
