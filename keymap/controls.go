package keymap

// Controls assigns keyboard characters to the non-note session
// controls. Like the note layout, assignments are fixed at session
// start and configurable.
type Controls struct {
	OctaveDown   rune
	OctaveUp     rune
	VelocityDown rune
	VelocityUp   rune
	BendDown     rune
	BendUp       rune
}

// DefaultControls returns the standard bottom-row assignments.
func DefaultControls() Controls {
	return Controls{
		OctaveDown:   'z',
		OctaveUp:     'x',
		VelocityDown: 'c',
		VelocityUp:   'v',
		BendDown:     'b',
		BendUp:       'n',
	}
}
