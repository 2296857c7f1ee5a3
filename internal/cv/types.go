package cv

import (
	"context"
	"jacl/internal/audio"
	"jacl/internal/eventloop"
	"jacl/internal/framing"
	"jacl/internal/rtbridge"
	"jacl/internal/session"
)

type Config struct {
	Session session.Config
	InputFD int // Control lines, one value each
}

// Publishes the most recent control value read from input as a constant
// signal on an audio output port
type Daemon struct {
	cfg Config
	ctx context.Context

	session *session.Session
	port    audio.Port
	framer  *framing.Framer
	loop    *eventloop.Loop
	Bridge  *rtbridge.Bridge
}
