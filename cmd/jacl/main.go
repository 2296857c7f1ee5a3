package main

import (
	"context"
	"flag"
	"fmt"
	"jacl/internal/cli"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"os"
)

func main() {
	global.CmdOpts = cli.DefineOptions()

	commandFlags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	global.Verbosity = global.VerbosityStandard
	cli.SetGlobalArguments(commandFlags)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(os.Stdout, commandFlags, cli.RootCLICommand, global.CmdOpts)
	}
	commandFlags.Parse(os.Args[1:])
	if commandFlags.NArg() < 1 {
		cli.PrintHelpMenu(os.Stderr, commandFlags, cli.RootCLICommand, global.CmdOpts)
		os.Exit(1)
	}

	// Retrieve command and args
	command := commandFlags.Arg(0)
	args := commandFlags.Args()[1:]

	// Setting global logging (stdout may carry protocol data, so log to stderr)
	ctx, cancel := context.WithCancel(context.Background())
	logger := logctx.NewLogger("global", global.Verbosity, ctx.Done())
	ctx = logctx.WithLogger(ctx, logger)
	logctx.StartWatcher(logger, os.Stderr)

	var err error
	switch command {
	case "cv":
		err = cli.CVMode(ctx, command, args)
	case "stdin-to-midi":
		err = cli.StdinToMidiMode(ctx, command, args)
	case "midi-to-stdout":
		err = cli.MidiToStdoutMode(ctx, command, args)
	case "version":
		cli.VersionMode(os.Stdout, args)
	default:
		cli.PrintHelpMenu(os.Stderr, commandFlags, cli.RootCLICommand, global.CmdOpts)
		err = fmt.Errorf("unknown command %q", command)
	}

	// Finish up any pending writes for global logger
	cancel()
	logger.Wake()
	logger.Wait()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
