package mapper

import (
	"testing"

	"midikeys/keymap"
)

// recorder captures everything a session emits.
type recorder struct {
	events []emitted
}

type emitted struct {
	kind     string // "on", "off", "bend"
	note     uint8
	velocity uint8
	bend     int16
}

func (r *recorder) NoteOn(note, velocity uint8) error {
	r.events = append(r.events, emitted{kind: "on", note: note, velocity: velocity})
	return nil
}

func (r *recorder) NoteOff(note, velocity uint8) error {
	r.events = append(r.events, emitted{kind: "off", note: note, velocity: velocity})
	return nil
}

func (r *recorder) PitchBend(value int16) error {
	r.events = append(r.events, emitted{kind: "bend", bend: value})
	return nil
}

func newTestSession() (*Session, *recorder) {
	rec := &recorder{}
	return NewSession(keymap.Default(), keymap.DefaultControls(), rec), rec
}

func TestPressReleaseEmitsPair(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('a'))
	if flow := s.HandleKeyUp(Char('a')); flow != Continue {
		t.Fatalf("release returned %v, want Continue", flow)
	}

	want := []emitted{
		{kind: "on", note: 60, velocity: 100},
		{kind: "off", note: 60, velocity: 100},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(rec.events), len(want), rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, rec.events[i], want[i])
		}
	}
	if held := s.Held(); len(held) != 0 {
		t.Errorf("held = %v, want empty", held)
	}
}

func TestKeyRepeatWhileHeldIsNoop(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('a'))
	s.HandleKeyDown(Char('a'))
	s.HandleKeyDown(Char('a'))

	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1 note on: %v", len(rec.events), rec.events)
	}
	if held := s.Held(); len(held) != 1 || held[0] != 60 {
		t.Errorf("held = %v, want [60]", held)
	}
}

func TestUppercaseMapsLikeLowercase(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('A'))
	if len(rec.events) != 1 || rec.events[0].note != 60 {
		t.Fatalf("got %v, want note on 60", rec.events)
	}
	s.HandleKeyUp(Char('A'))
	if held := s.Held(); len(held) != 0 {
		t.Errorf("held = %v, want empty", held)
	}
}

func TestUnmappedKeyIgnored(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('1'))
	s.HandleKeyDown(Char('@'))
	if flow := s.HandleKeyUp(Char('1')); flow != Continue {
		t.Fatalf("release of unmapped key returned %v, want Continue", flow)
	}

	if len(rec.events) != 0 {
		t.Errorf("got %v, want no events", rec.events)
	}
}

func TestReleaseWithoutPressIsNoop(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyUp(Char('a'))
	if len(rec.events) != 0 {
		t.Errorf("got %v, want no events", rec.events)
	}
}

func TestOctaveUpShiftsNotes(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('x'))
	s.HandleKeyDown(Char('a'))

	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1: %v", len(rec.events), rec.events)
	}
	if got := rec.events[0]; got.note != 72 || got.velocity != 100 {
		t.Errorf("got note on %d vel %d, want 72 vel 100", got.note, got.velocity)
	}
}

func TestOctaveDownStopsAtLowestNote(t *testing.T) {
	s, rec := newTestSession()

	// Lowest base note is 60, so at most five octaves down fit.
	for i := 0; i < 30; i++ {
		s.HandleKeyDown(Char('z'))
	}
	if got := s.OctaveShift(); got != -5 {
		t.Fatalf("octave shift = %d, want -5", got)
	}

	s.HandleKeyDown(Char('a'))
	if rec.events[len(rec.events)-1].note != 0 {
		t.Errorf("got note %d, want 0", rec.events[len(rec.events)-1].note)
	}
}

func TestOctaveUpStopsAtHighestNote(t *testing.T) {
	s, rec := newTestSession()

	// Highest base note is 77, so at most four octaves up fit.
	for i := 0; i < 30; i++ {
		s.HandleKeyDown(Char('x'))
	}
	if got := s.OctaveShift(); got != 4 {
		t.Fatalf("octave shift = %d, want 4", got)
	}

	for _, key := range []rune{'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';', '\''} {
		s.HandleKeyDown(Char(key))
	}
	for _, ev := range rec.events {
		if ev.note > 127 {
			t.Errorf("emitted note %d above MIDI range", ev.note)
		}
	}
}

func TestOctaveRejectionLeavesStateUnchanged(t *testing.T) {
	s, rec := newTestSession()

	for i := 0; i < 10; i++ {
		s.HandleKeyDown(Char('x'))
	}
	shift := s.OctaveShift()
	events := len(rec.events)

	s.HandleKeyDown(Char('x'))
	if s.OctaveShift() != shift {
		t.Errorf("octave shift changed on rejected adjustment")
	}
	if len(rec.events) != events {
		t.Errorf("rejected octave change emitted a message")
	}
	if s.Notice() == "" {
		t.Errorf("rejected octave change produced no notice")
	}
}

func TestVelocityClamps(t *testing.T) {
	s, _ := newTestSession()

	for i := 0; i < 20; i++ {
		s.HandleKeyDown(Char('v'))
	}
	if got := s.Velocity(); got != 127 {
		t.Errorf("velocity = %d, want 127", got)
	}

	for i := 0; i < 30; i++ {
		s.HandleKeyDown(Char('c'))
	}
	if got := s.Velocity(); got != 0 {
		t.Errorf("velocity = %d, want 0", got)
	}
}

func TestVelocityChangeEmitsNothing(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('v'))
	s.HandleKeyDown(Char('c'))
	if len(rec.events) != 0 {
		t.Errorf("velocity controls emitted %v, want nothing", rec.events)
	}
}

func TestPitchBendClampsAndEmits(t *testing.T) {
	s, rec := newTestSession()

	for i := 0; i < 20; i++ {
		s.HandleKeyDown(Char('n'))
	}
	if got := s.PitchBend(); got != 8191 {
		t.Errorf("pitch bend = %d, want 8191", got)
	}
	if len(rec.events) != 20 {
		t.Fatalf("got %d events, want 20 pitch bends", len(rec.events))
	}
	if last := rec.events[len(rec.events)-1]; last.kind != "bend" || last.bend != 8191 {
		t.Errorf("last event = %v, want bend 8191", last)
	}

	for i := 0; i < 40; i++ {
		s.HandleKeyDown(Char('b'))
	}
	if got := s.PitchBend(); got != -8192 {
		t.Errorf("pitch bend = %d, want -8192", got)
	}
	for _, ev := range rec.events {
		if ev.kind == "bend" && (ev.bend < -8192 || ev.bend > 8191) {
			t.Errorf("bend %d out of range", ev.bend)
		}
	}
}

func TestNoteOffUsesCurrentVelocity(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Char('a'))
	s.HandleKeyDown(Char('v')) // velocity 100 -> 110
	s.HandleKeyUp(Char('a'))

	off := rec.events[len(rec.events)-1]
	if off.kind != "off" || off.note != 60 || off.velocity != 110 {
		t.Errorf("got %v, want note off 60 vel 110", off)
	}
}

func TestQuitReleasesAllHeldNotes(t *testing.T) {
	s, rec := newTestSession()

	for _, key := range []rune{'a', 's', 'd'} {
		s.HandleKeyDown(Char(key))
	}
	rec.events = nil

	if flow := s.HandleKeyUp(Esc()); flow != Terminate {
		t.Fatalf("quit returned %v, want Terminate", flow)
	}

	if len(rec.events) != 3 {
		t.Fatalf("got %d events, want 3 note offs: %v", len(rec.events), rec.events)
	}
	seen := make(map[uint8]int)
	for _, ev := range rec.events {
		if ev.kind != "off" {
			t.Errorf("got %v, want a note off", ev)
		}
		seen[ev.note]++
	}
	for _, note := range []uint8{60, 62, 64} {
		if seen[note] != 1 {
			t.Errorf("note %d released %d times, want once", note, seen[note])
		}
	}
	if held := s.Held(); len(held) != 0 {
		t.Errorf("held = %v after quit, want empty", held)
	}
}

func TestOtherSpecialKeysIgnored(t *testing.T) {
	s, rec := newTestSession()

	s.HandleKeyDown(Esc()) // only key-up quits
	if flow := s.HandleKeyUp(KeyEvent{Kind: KeySpecial, Special: SpecialNone}); flow != Continue {
		t.Fatalf("got %v, want Continue", flow)
	}
	if len(rec.events) != 0 {
		t.Errorf("got %v, want no events", rec.events)
	}
}

// A release after an octave change recomputes the adjusted note with
// the current shift, so the originally sounding note stays held. This
// mirrors the press path exactly.
func TestReleaseAfterOctaveChangeLeavesNoteHeld(t *testing.T) {
	s, _ := newTestSession()

	s.HandleKeyDown(Char('a')) // 60
	s.HandleKeyDown(Char('x'))
	s.HandleKeyUp(Char('a')) // recomputes to 72, not held

	if held := s.Held(); len(held) != 1 || held[0] != 60 {
		t.Errorf("held = %v, want [60]", held)
	}
}

func TestSetVelocityClamps(t *testing.T) {
	s, rec := newTestSession()

	s.SetVelocity(200)
	s.HandleKeyDown(Char('a'))
	if rec.events[0].velocity != 127 {
		t.Errorf("velocity = %d, want 127", rec.events[0].velocity)
	}
}
