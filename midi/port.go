package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// DefaultPortName is the virtual port name other software connects to.
const DefaultPortName = "VizASynthTestPort"

// All outbound messages go on channel 0.
const channel uint8 = 0

// Port is a virtual MIDI output port. Other software sees it as a
// regular MIDI device and can connect to it as an input.
type Port struct {
	name string
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(gomidi.Message) error
}

// OpenVirtual creates a virtual MIDI output port with the given name.
// Call Close when done to tear down the port and the driver.
func OpenVirtual(name string) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("open virtual out %q: %w", name, err)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		out.Close()
		drv.Close()
		return nil, fmt.Errorf("sender for %q: %w", name, err)
	}
	return &Port{name: name, drv: drv, out: out, send: send}, nil
}

// Name returns the port name.
func (p *Port) Name() string { return p.name }

// NoteOn sends a note-on message.
func (p *Port) NoteOn(note, velocity uint8) error {
	return p.send(gomidi.NoteOn(channel, note, velocity))
}

// NoteOff sends a note-off message with an explicit release velocity.
func (p *Port) NoteOff(note, velocity uint8) error {
	return p.send(gomidi.NoteOffVelocity(channel, note, velocity))
}

// PitchBend sends a pitch-wheel message.
func (p *Port) PitchBend(value int16) error {
	return p.send(gomidi.Pitchbend(channel, value))
}

// Close tears down the port and the underlying driver.
func (p *Port) Close() error {
	p.out.Close()
	return p.drv.Close()
}

// OutPortNames lists the MIDI output ports currently visible on the
// system.
func OutPortNames() []string {
	var names []string
	for _, port := range gomidi.GetOutPorts() {
		names = append(names, port.String())
	}
	return names
}
