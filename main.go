package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"midikeys/config"
	"midikeys/debug"
	"midikeys/mapper"
	"midikeys/midi"
	"midikeys/tui"
)

func main() {
	portFlag := flag.String("port", "", "virtual MIDI port name (overrides config)")
	velFlag := flag.Int("velocity", 0, "starting velocity 1-127 (overrides config)")
	debugFlag := flag.Bool("debug", false, "write a debug log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *portFlag != "" {
		cfg.PortName = *portFlag
	}
	if *velFlag > 0 {
		cfg.Velocity = *velFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	layout, err := cfg.KeyLayout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	controls := cfg.KeyControls()

	port, err := midi.OpenVirtual(cfg.PortName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "midi: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	session := mapper.NewSession(layout, controls, port)
	session.SetVelocity(cfg.Velocity)

	fmt.Printf("midikeys - playing to virtual port %q\n", port.Name())
	fmt.Println("Connect a synth to the port, then play on this keyboard")
	fmt.Println("")

	m := tui.NewModel(session, port.Name(), layout, controls)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
