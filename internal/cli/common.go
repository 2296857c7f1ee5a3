package cli

import (
	"context"
	"flag"
	"fmt"
	"jacl/internal/audio"
	"jacl/internal/audio/jack"
	"jacl/internal/global"
	"jacl/internal/session"
)

func SetGlobalArguments(fs *flag.FlagSet) {
	fs.IntVar(&global.Verbosity, "v", global.Verbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&global.Verbosity, "verbosity", global.Verbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
}

// Optional single positional argument naming the client
func clientName(fs *flag.FlagSet, defaultName string) (name string, err error) {
	switch fs.NArg() {
	case 0:
		name = defaultName
	case 1:
		name = fs.Arg(0)
		if name == "" {
			err = fmt.Errorf("client name cannot be empty")
		}
	default:
		err = fmt.Errorf("too many arguments: expected at most one client name, got %d", fs.NArg())
	}
	return
}

// Connects to a running JACK server (never starts one)
func openJack(name string) (client audio.Client, err error) {
	jackClient, err := jack.Open(name)
	if err != nil {
		return
	}
	client = jackClient
	return
}

func sessionConfig(name string) (cfg session.Config) {
	cfg = session.Config{
		ClientName:     name,
		Open:           openJack,
		HandleSignals:  true,
		RestoreTTYLine: true,
	}
	return
}

type daemonLike interface {
	Start(ctx context.Context) (err error)
	Run() (err error)
	Shutdown()
}

// Starts daemon, blocks until it stops, then tears it down
func runDaemon(ctx context.Context, daemon daemonLike) (err error) {
	err = daemon.Start(ctx)
	if err != nil {
		err = fmt.Errorf("failed to start: %v", err)
		return
	}

	err = daemon.Run()
	daemon.Shutdown()
	if err != nil {
		err = fmt.Errorf("stopped on error: %v", err)
		return
	}
	return
}
