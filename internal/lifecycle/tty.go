package lifecycle

import (
	"os"

	"golang.org/x/term"
)

const controllingTerminal string = "/dev/tty"

// Puts the shell prompt back on its own line after an interactive ^C.
// Silently does nothing without a controlling terminal.
func RestoreTerminalLine() {
	tty, err := os.OpenFile(controllingTerminal, os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	newlineIfTerminal(tty)
}

func newlineIfTerminal(file *os.File) (written bool) {
	if !term.IsTerminal(int(file.Fd())) {
		return
	}
	_, err := file.Write([]byte("\n"))
	written = err == nil
	return
}
