package cli

import "jacl/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "JACK Command Line clients (jacl)",
		FullDescription: "  Bridges line-oriented standard input/output and the JACK audio graph",
		CommandName:     RootCLICommand,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	// Control voltage
	root.ChildCommands["cv"] = &global.CommandSet{
		CommandName:     "cv",
		UsageOption:     "[client-name]",
		Description:     "Control Voltage Source",
		FullDescription: "Reads one decimal value per line from stdin and holds the latest on audio output port '" + global.CVPortName + "' (default client name " + global.DefaultCVClientName + ")",
	}

	// Text to MIDI
	root.ChildCommands["stdin-to-midi"] = &global.CommandSet{
		CommandName:     "stdin-to-midi",
		UsageOption:     "[client-name]",
		Description:     "Send MIDI From Hex Lines",
		FullDescription: "Reads one hex-encoded MIDI message per line from stdin and sends it on MIDI output port '" + global.MidiSendPortName + "' (default client name " + global.DefaultMidiSendClientName + "). An X anywhere discards the line read so far.",
	}

	// MIDI to text
	root.ChildCommands["midi-to-stdout"] = &global.CommandSet{
		CommandName:     "midi-to-stdout",
		UsageOption:     "[client-name]",
		Description:     "Print MIDI As Hex Lines",
		FullDescription: "Writes every MIDI message received on input port '" + global.MidiRecvPortName + "' to stdout as a hex line (default client name " + global.DefaultMidiRecvClientName + "). A line reading X means the previous line was cut short and must be discarded.",
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
