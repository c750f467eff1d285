package mapper

import (
	"fmt"
	"sort"
	"unicode"

	"go.uber.org/zap"

	"midikeys/debug"
	"midikeys/keymap"
)

// MIDI value bounds.
const (
	MaxNote     = 127
	MaxVelocity = 127
	MinBend     = -8192
	MaxBend     = 8191
)

// DefaultVelocity is the initial note velocity of a new session.
const DefaultVelocity = 100

// Adjustment step per control press.
const (
	velocityStep = 10
	bendStep     = 512
)

// Session translates key-down/key-up events into MIDI note-on,
// note-off and pitch-bend messages. It owns the octave shift, the
// velocity, the pitch-bend value and the set of currently sounding
// notes. A session has a single owner; handlers run to completion
// before the next event, so no locking is needed.
type Session struct {
	layout   keymap.Layout
	controls keymap.Controls
	out      Sender

	octaveShift int
	velocity    uint8
	pitchBend   int16
	pressed     map[uint8]bool

	lastNotice string
}

// NewSession creates a session with the given layout, control
// assignments and output sink. Velocity starts at DefaultVelocity,
// octave shift and pitch bend at zero.
func NewSession(layout keymap.Layout, controls keymap.Controls, out Sender) *Session {
	return &Session{
		layout:   layout,
		controls: controls,
		out:      out,
		velocity: DefaultVelocity,
		pressed:  make(map[uint8]bool),
	}
}

// SetVelocity overrides the starting velocity (clamped to 0-127).
func (s *Session) SetVelocity(v int) {
	s.velocity = uint8(clamp(v, 0, MaxVelocity))
}

// OctaveShift returns the current octave transposition.
func (s *Session) OctaveShift() int { return s.octaveShift }

// Velocity returns the current note velocity.
func (s *Session) Velocity() uint8 { return s.velocity }

// PitchBend returns the current pitch-bend value.
func (s *Session) PitchBend() int16 { return s.pitchBend }

// Notice returns the most recent user-visible status message.
func (s *Session) Notice() string { return s.lastNotice }

// Held returns the currently sounding notes in ascending order.
func (s *Session) Held() []uint8 {
	notes := make([]uint8, 0, len(s.pressed))
	for n := range s.pressed {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })
	return notes
}

// HandleKeyDown processes a key press. A mapped note key starts a note
// unless it is already sounding (key auto-repeat is a no-op). Control
// keys adjust the session state; everything else is ignored.
func (s *Session) HandleKeyDown(ev KeyEvent) {
	if ev.Kind != KeyChar {
		return
	}
	key := unicode.ToLower(ev.Char)

	if base, ok := s.layout.Note(key); ok {
		note := s.adjustNote(base)
		if s.pressed[note] {
			return
		}
		s.send(s.out.NoteOn(note, s.velocity))
		s.pressed[note] = true
		s.noticef("note on %s (%d) vel %d", keymap.NoteName(note), note, s.velocity)
		return
	}

	switch key {
	case s.controls.OctaveDown:
		if int(s.layout.Lowest())+(s.octaveShift-1)*12 < 0 {
			s.noticef("cannot lower octave, lowest note reached")
			return
		}
		s.octaveShift--
		s.noticef("octave %+d", s.octaveShift)

	case s.controls.OctaveUp:
		if int(s.layout.Highest())+(s.octaveShift+1)*12 > MaxNote {
			s.noticef("cannot raise octave, highest note reached")
			return
		}
		s.octaveShift++
		s.noticef("octave %+d", s.octaveShift)

	case s.controls.VelocityDown:
		s.velocity = uint8(clamp(int(s.velocity)-velocityStep, 0, MaxVelocity))
		s.noticef("velocity %d", s.velocity)

	case s.controls.VelocityUp:
		s.velocity = uint8(clamp(int(s.velocity)+velocityStep, 0, MaxVelocity))
		s.noticef("velocity %d", s.velocity)

	case s.controls.BendDown:
		s.pitchBend = int16(clamp(int(s.pitchBend)-bendStep, MinBend, MaxBend))
		s.send(s.out.PitchBend(s.pitchBend))
		s.noticef("pitch bend %d", s.pitchBend)

	case s.controls.BendUp:
		s.pitchBend = int16(clamp(int(s.pitchBend)+bendStep, MinBend, MaxBend))
		s.send(s.out.PitchBend(s.pitchBend))
		s.noticef("pitch bend %d", s.pitchBend)
	}
}

// HandleKeyUp processes a key release. Releasing a mapped note key
// stops the note if it is sounding. The escape key releases every
// held note and asks the driving loop to terminate; this is the only
// shutdown path.
//
// Note-off velocity is whatever the session velocity is at release
// time, not the value captured at press time.
func (s *Session) HandleKeyUp(ev KeyEvent) Flow {
	if ev.Kind == KeySpecial {
		if ev.Special == SpecialEsc {
			s.ReleaseAll()
			s.noticef("quit")
			return Terminate
		}
		return Continue
	}

	key := unicode.ToLower(ev.Char)
	base, ok := s.layout.Note(key)
	if !ok {
		return Continue
	}
	note := s.adjustNote(base)
	if s.pressed[note] {
		s.send(s.out.NoteOff(note, s.velocity))
		delete(s.pressed, note)
		s.noticef("note off %s (%d)", keymap.NoteName(note), note)
	}
	return Continue
}

// ReleaseAll sends a note-off for every held note, each exactly once.
func (s *Session) ReleaseAll() {
	for note := range s.pressed {
		s.send(s.out.NoteOff(note, s.velocity))
		delete(s.pressed, note)
	}
}

// adjustNote applies the octave shift, clamped to the MIDI range.
func (s *Session) adjustNote(base uint8) uint8 {
	return uint8(clamp(int(base)+s.octaveShift*12, 0, MaxNote))
}

// send logs emission failures; the session itself never errors and
// message emission is fire-and-forget.
func (s *Session) send(err error) {
	if err != nil {
		debug.Log("midi send failed", zap.Error(err))
	}
}

func (s *Session) noticef(format string, args ...any) {
	s.lastNotice = fmt.Sprintf(format, args...)
	debug.Log(s.lastNotice)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
