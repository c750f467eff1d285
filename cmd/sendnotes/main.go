package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"midikeys/keymap"
	"midikeys/midi"
)

const velocity = 100

// C major scale, C4 to C5
var scale = []uint8{60, 62, 64, 65, 67, 69, 71, 72}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "note":
		runNote(iterations(os.Args[2:]))
	case "scale":
		runScale(iterations(os.Args[2:]))
	case "list":
		listPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Scripted MIDI senders")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  note [count|forever]   - repeat middle C on the virtual port")
	fmt.Println("  scale [count|forever]  - play a C major scale")
	fmt.Println("  list                   - list MIDI output ports")
}

// iterations parses the optional count argument. 0 means forever.
func iterations(args []string) int {
	if len(args) == 0 {
		return 1
	}
	if strings.EqualFold(args[0], "forever") {
		return 0
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "bad count %q: want a positive number or 'forever'\n", args[0])
		os.Exit(1)
	}
	return n
}

func runNote(count int) {
	port, err := midi.OpenVirtual(midi.DefaultPortName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "midi: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	for i := 1; count == 0 || i <= count; i++ {
		port.NoteOn(60, velocity)
		fmt.Printf("Iteration %d: note on C4\n", i)
		time.Sleep(time.Second)

		port.NoteOff(60, velocity)
		fmt.Printf("Iteration %d: note off C4\n", i)
		time.Sleep(500 * time.Millisecond)
	}
}

func runScale(count int) {
	port, err := midi.OpenVirtual(midi.DefaultPortName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "midi: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	for i := 1; count == 0 || i <= count; i++ {
		fmt.Printf("Iteration %d:\n", i)
		for _, note := range scale {
			port.NoteOn(note, velocity)
			fmt.Printf("  note on  %s\n", keymap.NoteName(note))
			time.Sleep(500 * time.Millisecond)

			port.NoteOff(note, velocity)
			fmt.Printf("  note off %s\n", keymap.NoteName(note))
			time.Sleep(100 * time.Millisecond)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func listPorts() {
	names := midi.OutPortNames()
	if len(names) == 0 {
		fmt.Println("No MIDI output ports found")
		return
	}
	fmt.Println("MIDI output ports:")
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}
