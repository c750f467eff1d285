package mapper

// KeyKind tags a KeyEvent as a printable character or a special key.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeySpecial
)

// SpecialKey identifies the non-character keys the mapper understands.
type SpecialKey int

const (
	SpecialNone SpecialKey = iota
	SpecialEsc
)

// KeyEvent is a raw key press or release from the input layer.
// Exactly one of Char/Special is meaningful, selected by Kind.
type KeyEvent struct {
	Kind    KeyKind
	Char    rune
	Special SpecialKey
}

// Char builds a character key event.
func Char(r rune) KeyEvent {
	return KeyEvent{Kind: KeyChar, Char: r}
}

// Esc builds the escape key event.
func Esc() KeyEvent {
	return KeyEvent{Kind: KeySpecial, Special: SpecialEsc}
}

// Flow tells the driving loop whether to keep running after a key-up.
type Flow int

const (
	Continue Flow = iota
	Terminate
)

// Sender is the outbound MIDI sink the session emits to. The virtual
// port implements it; tests use a recorder.
type Sender interface {
	NoteOn(note, velocity uint8) error
	NoteOff(note, velocity uint8) error
	PitchBend(value int16) error
}
