package songsort

// SortState is the active sort mode and direction of a browsing session.
type SortState struct {
	Mode     SortMode
	Inverted bool
}

// ToggleInvert returns s with the direction flipped.
func ToggleInvert(s SortState) SortState {
	s.Inverted = !s.Inverted
	return s
}

// Select returns the state after the sort button for mode was pressed.
// Pressing the button of the active mode flips the direction instead.
func (s SortState) Select(mode SortMode) SortState {
	if s.Mode == mode {
		return ToggleInvert(s)
	}
	s.Mode = mode
	return s
}

func (s SortState) String() string {
	if s.Inverted {
		return s.Mode.String() + " (inverted)"
	}
	return s.Mode.String()
}
