// Package review implements the review-queue navigator as a pure reducer:
// (state, command) -> (state, effects). It knows nothing about HTTP, key
// events or persistence; callers feed it an ordered snapshot of chunk
// statuses and apply the returned effects to the real chunks.
package review

import "invoice-review-be/internal/entity"

type Command int

const (
	// CommandInit resets the cursor to the first pending chunk, or 0.
	CommandInit Command = iota
	// CommandNext / CommandPrev move by one and wrap around both ends.
	CommandNext
	CommandPrev
	// CommandStepDown / CommandStepUp move by one, clamped at the ends.
	CommandStepDown
	CommandStepUp
	// CommandApprove / CommandReject decide the focused chunk and, if it was
	// pending, advance to the next pending chunk after the cursor.
	CommandApprove
	CommandReject
	// CommandEdit starts editing the focused chunk without moving the cursor.
	CommandEdit
)

type EffectKind int

const (
	EffectApprove EffectKind = iota
	EffectReject
	EffectStartEdit
)

// Effect is a side effect the caller must apply to the chunk at Index.
type Effect struct {
	Kind  EffectKind
	Index int
}

// State is the full navigator state. Statuses is the chunk status sequence
// ordered by sequence number. TextFieldFocused suppresses every command so
// typing in an input is never intercepted.
type State struct {
	Cursor           int
	Statuses         []entity.ChunkStatus
	TextFieldFocused bool
}

// NewState builds an initialized state over the given status sequence.
func NewState(statuses []entity.ChunkStatus) State {
	s, _ := Reduce(State{Statuses: statuses}, CommandInit)
	return s
}

// Reduce applies one command. The input state is not mutated.
func Reduce(s State, cmd Command) (State, []Effect) {
	if s.TextFieldFocused {
		return s, nil
	}
	n := len(s.Statuses)
	if n == 0 {
		s.Cursor = 0
		return s, nil
	}
	if s.Cursor < 0 || s.Cursor >= n {
		s.Cursor = 0
	}

	switch cmd {
	case CommandInit:
		s.Cursor = firstPending(s.Statuses)

	case CommandNext:
		s.Cursor = (s.Cursor + 1) % n

	case CommandPrev:
		s.Cursor = (s.Cursor - 1 + n) % n

	case CommandStepDown:
		if s.Cursor < n-1 {
			s.Cursor++
		}

	case CommandStepUp:
		if s.Cursor > 0 {
			s.Cursor--
		}

	case CommandApprove:
		return decide(s, entity.ChunkStatusApproved, EffectApprove)

	case CommandReject:
		return decide(s, entity.ChunkStatusRejected, EffectReject)

	case CommandEdit:
		statuses := cloneStatuses(s.Statuses)
		statuses[s.Cursor] = entity.ChunkStatusEditing
		s.Statuses = statuses
		return s, []Effect{{Kind: EffectStartEdit, Index: s.Cursor}}
	}

	return s, nil
}

func decide(s State, target entity.ChunkStatus, kind EffectKind) (State, []Effect) {
	wasPending := s.Statuses[s.Cursor] == entity.ChunkStatusPending

	statuses := cloneStatuses(s.Statuses)
	statuses[s.Cursor] = target
	s.Statuses = statuses

	effects := []Effect{{Kind: kind, Index: s.Cursor}}

	// Only a pending chunk releases the cursor; re-deciding an already
	// decided chunk keeps focus in place. The search never wraps.
	if wasPending {
		for i := s.Cursor + 1; i < len(s.Statuses); i++ {
			if s.Statuses[i] == entity.ChunkStatusPending {
				s.Cursor = i
				break
			}
		}
	}
	return s, effects
}

func firstPending(statuses []entity.ChunkStatus) int {
	for i, st := range statuses {
		if st == entity.ChunkStatusPending {
			return i
		}
	}
	return 0
}

func cloneStatuses(statuses []entity.ChunkStatus) []entity.ChunkStatus {
	out := make([]entity.ChunkStatus, len(statuses))
	copy(out, statuses)
	return out
}
