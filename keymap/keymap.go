package keymap

import (
	"fmt"
	"sort"
)

// Layout maps a keyboard character to a base MIDI note number.
// The layout is fixed for the life of a session; octave shifting and
// other adjustments happen downstream in the mapper.
type Layout map[rune]uint8

// Default returns the qwerty piano layout: white keys on the home row
// starting at middle C, black keys interleaved on the row above.
//
//	White: A S D F G H J K L ; '  ->  C D E F G A B C D E F
//	Black: W E   T Y U   O P      ->  C# D#  F# G# A#  C# D#
func Default() Layout {
	return Layout{
		'a': 60, 's': 62, 'd': 64, 'f': 65, 'g': 67, 'h': 69, 'j': 71,
		'k': 72, 'l': 74, ';': 76, '\'': 77,

		'w': 61, 'e': 63, 't': 66, 'y': 68, 'u': 70, 'o': 73, 'p': 75,
	}
}

// Note returns the base note bound to key and whether key is mapped.
func (l Layout) Note(key rune) (uint8, bool) {
	n, ok := l[key]
	return n, ok
}

// Lowest returns the lowest base note in the layout.
func (l Layout) Lowest() uint8 {
	low := uint8(127)
	for _, n := range l {
		if n < low {
			low = n
		}
	}
	return low
}

// Highest returns the highest base note in the layout.
func (l Layout) Highest() uint8 {
	var high uint8
	for _, n := range l {
		if n > high {
			high = n
		}
	}
	return high
}

// Keys returns the mapped characters in ascending note order.
func (l Layout) Keys() []rune {
	keys := make([]rune, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return l[keys[i]] < l[keys[j]] })
	return keys
}

// FromStrings builds a Layout from a string-keyed table (the config
// file representation). Keys must be single characters, notes 0-127.
func FromStrings(table map[string]uint8) (Layout, error) {
	layout := make(Layout, len(table))
	for k, n := range table {
		runes := []rune(k)
		if len(runes) != 1 {
			return nil, fmt.Errorf("layout key %q: want a single character", k)
		}
		if n > 127 {
			return nil, fmt.Errorf("layout key %q: note %d out of MIDI range", k, n)
		}
		layout[runes[0]] = n
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("layout has no keys")
	}
	return layout, nil
}

// Strings converts the layout to its config file representation.
func (l Layout) Strings() map[string]uint8 {
	table := make(map[string]uint8, len(l))
	for k, n := range l {
		table[string(k)] = n
	}
	return table
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the pitch name of a MIDI note number (60 = "C4").
func NoteName(note uint8) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note)/12-1)
}
