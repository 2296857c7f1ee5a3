package global

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion string = "v0.1.0"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Event queue (mostly for variable log verbosity handling)
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	// Default client names registered with the audio server
	DefaultCVClientName       string = "jacl-cv"
	DefaultMidiSendClientName string = "js2m"
	DefaultMidiRecvClientName string = "jm2s"

	// Port names
	CVPortName       string = "value"
	MidiSendPortName string = "out"
	MidiRecvPortName string = "in"

	// Line protocol
	DesyncMarker     byte = 'X'  // Prior line was torn, discard the partial fragment
	ScalarLineMax    int  = 127  // Longest scalar input line kept (bytes beyond are dropped)
	HexLineMax       int  = 1023 // Longest hex input line kept (bytes beyond are dropped)
	ReadChunkSize    int  = 64   // Bytes read from input per read call
	WriteScratchSize int  = 128  // Encoder scratch buffer flushed per write call

	// Scalar clamp bounds (only applied when built with the clamp tag)
	ClampMin float32 = 0
	ClampMax float32 = 1

	// Port metadata
	MetadataSignalType string = "http://jackaudio.org/metadata/signal-type"
	SignalTypeCV       string = "CV"
	MimeTextPlain      string = "text/plain"

	// Share of free system memory unreclaimed queue nodes may hold before warning
	QueuePressurePercent uint64 = 10

	// Namespacing Name Components
	NSMetric   string = "Metrics"
	NSTest     string = "Test"
	NSCLI      string = "CLI"
	NSCV       string = "CV"
	NSMidiSend string = "StdinToMidi"
	NSMidiRecv string = "MidiToStdout"
	NSQueue    string = "Queue"
	NSBridge   string = "Bridge"
	NSFramer   string = "Framer"
	NSWriter   string = "Writer"
	NSLoop     string = "EventLoop"
	NSAudio    string = "Audio"
	NSSignal   string = "Signal"
	NSoStdIn   string = "Stdin"
	NSoStdOut  string = "Stdout"
)
