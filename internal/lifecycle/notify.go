// Handles operations common to every client program to manage its lifecycle
// (shutdown requests, signals, service manager notification, terminal cleanup).
package lifecycle

import (
	"context"
	"fmt"
	"jacl/internal/global"
	"jacl/internal/logctx"
	"net"
	"os"
)

// Sends READY=1 to systemd to indicate the client is active.
func NotifyReady(ctx context.Context) (err error) {
	err = notify(ctx, "READY=1")
	return
}

// Sends STOPPING=1 to systemd to indicate shutdown has begun.
func NotifyStopping(ctx context.Context) (err error) {
	err = notify(ctx, "STOPPING=1")
	return
}

// Sends custom status message to systemd for context.
func NotifyStatus(ctx context.Context, msg string) (err error) {
	err = notify(ctx, "STATUS="+msg)
	return
}

// Sends a raw sd_notify message.
// If NOTIFY_SOCKET is unset, this is a no-op and returns nil.
func notify(ctx context.Context, msg string) (err error) {
	sockPath := os.Getenv("NOTIFY_SOCKET")
	if sockPath == "" {
		// Not running under systemd
		return
	}

	addr := &net.UnixAddr{
		Name: sockPath,
		Net:  "unixgram",
	}

	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		err = fmt.Errorf("notify dial failed: %v", err)
		return
	}
	defer conn.Close()

	_, err = conn.Write([]byte(msg))
	if err != nil {
		err = fmt.Errorf("notify write failed: %v", err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Notified service manager with message '%s'\n", msg)
	return
}
