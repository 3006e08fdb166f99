package content

import "fmt"

// WriteState ist der Zustand eines Artikel-Schreibvorgangs.
type WriteState string

const (
	StateDraft        WriteState = "DRAFT_PAYLOAD"
	StateValidated    WriteState = "VALIDATED"
	StateSlugResolved WriteState = "SLUG_RESOLVED"
	StatePersisted    WriteState = "PERSISTED"
	StateRejected     WriteState = "REJECTED"
)

var writeTransitions = map[WriteState][]WriteState{
	StateDraft:     {StateValidated, StateRejected},
	StateValidated: {StateSlugResolved},
	// Ein Slug-Konflikt beim Commit führt zurück zur Slug-Auflösung.
	StateSlugResolved: {StatePersisted, StateSlugResolved},
}

// WriteLifecycle verfolgt die Zustandsübergänge eines Schreibvorgangs.
type WriteLifecycle struct {
	State   WriteState
	History []WriteState
}

func NewWriteLifecycle() *WriteLifecycle {
	return &WriteLifecycle{State: StateDraft, History: []WriteState{StateDraft}}
}

// Advance wechselt in den Zustand to, sofern der Übergang erlaubt ist.
func (l *WriteLifecycle) Advance(to WriteState) error {
	for _, allowed := range writeTransitions[l.State] {
		if allowed == to {
			l.State = to
			l.History = append(l.History, to)
			return nil
		}
	}
	return fmt.Errorf("invalid write transition %s -> %s", l.State, to)
}
