package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"jacl/internal/cv"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"jacl/internal/midirecv"
	"jacl/internal/midisend"
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// Parses subcommand flags, returning the client name to use
func parseMode(ctx context.Context, commandname string, args []string, defaultName string) (name string, err error) {
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		PrintHelpMenu(os.Stdout, commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args)

	name, err = clientName(commandFlags, defaultName)
	if err != nil {
		PrintHelpMenu(os.Stderr, commandFlags, commandname, global.CmdOpts)
		return
	}

	logctx.SetLogLevel(ctx, global.Verbosity)
	return
}

func CVMode(ctx context.Context, commandname string, args []string) (err error) {
	name, err := parseMode(ctx, commandname, args, global.DefaultCVClientName)
	if err != nil {
		return
	}

	daemon := cv.NewDaemon(cv.Config{
		Session: sessionConfig(name),
		InputFD: unix.Stdin,
	})
	err = runDaemon(ctx, daemon)
	return
}

func StdinToMidiMode(ctx context.Context, commandname string, args []string) (err error) {
	name, err := parseMode(ctx, commandname, args, global.DefaultMidiSendClientName)
	if err != nil {
		return
	}

	daemon := midisend.NewDaemon(midisend.Config{
		Session: sessionConfig(name),
		InputFD: unix.Stdin,
	})
	err = runDaemon(ctx, daemon)
	return
}

func MidiToStdoutMode(ctx context.Context, commandname string, args []string) (err error) {
	name, err := parseMode(ctx, commandname, args, global.DefaultMidiRecvClientName)
	if err != nil {
		return
	}

	daemon := midirecv.NewDaemon(midirecv.Config{
		Session:  sessionConfig(name),
		OutputFD: unix.Stdout,
	})
	err = runDaemon(ctx, daemon)
	return
}

func VersionMode(out io.Writer, args []string) {
	if len(args) > 0 && (args[0] == "--verbosity" || args[0] == "-v") {
		fmt.Fprintf(out, "jacl %s\n", global.ProgVersion)
		fmt.Fprintf(out, "Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
	} else {
		fmt.Fprintln(out, global.ProgVersion)
	}
}
