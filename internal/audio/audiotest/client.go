// In-memory audio backend. Process callbacks run synchronously inside Cycle,
// on the calling goroutine, so tests decide exactly when a period happens.
package audiotest

import (
	"fmt"
	"jacl/internal/audio"
	"sync"
)

type Client struct {
	name     string
	mutex    sync.Mutex // Held for the duration of a cycle, like the server's process lock
	callback audio.ProcessCallback
	ports    []*Port
	active   bool
	closed   bool

	Properties map[string]map[string]string // port name -> key -> value

	// Injected failures
	FailActivate     error
	FailRegister     error
	FailProperty     error
	UnsupportedProps bool
}

// Opens an in-memory client
func NewClient(name string) (client *Client) {
	client = &Client{
		name:       name,
		Properties: make(map[string]map[string]string),
	}
	return
}

func (client *Client) Name() (name string) {
	name = client.name
	return
}

func (client *Client) SetProcessCallback(callback audio.ProcessCallback) (err error) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.active {
		err = fmt.Errorf("cannot set process callback on an active client")
		return
	}
	client.callback = callback
	return
}

func (client *Client) RegisterPort(name string, kind audio.PortKind, direction audio.Direction) (port audio.Port, err error) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.FailRegister != nil {
		err = client.FailRegister
		return
	}
	for _, existing := range client.ports {
		if existing.name == name {
			err = fmt.Errorf("port '%s' already registered", name)
			return
		}
	}

	newPort := &Port{
		name:      name,
		kind:      kind,
		direction: direction,
	}
	newPort.writer.port = newPort
	client.ports = append(client.ports, newPort)
	port = newPort
	return
}

func (client *Client) SetPortProperty(port audio.Port, key, value, valueType string) (err error) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.UnsupportedProps {
		err = audio.ErrUnsupported
		return
	}
	if client.FailProperty != nil {
		err = client.FailProperty
		return
	}

	props, ok := client.Properties[port.Name()]
	if !ok {
		props = make(map[string]string)
		client.Properties[port.Name()] = props
	}
	props[key] = value
	return
}

func (client *Client) Activate() (err error) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.FailActivate != nil {
		err = client.FailActivate
		return
	}
	if client.callback == nil {
		err = fmt.Errorf("no process callback set")
		return
	}
	client.active = true
	return
}

// Waits for a running cycle, then detaches the callback for good
func (client *Client) Close() (err error) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if client.closed {
		err = fmt.Errorf("client already closed")
		return
	}
	client.active = false
	client.closed = true
	client.callback = nil
	return
}

func (client *Client) Active() (active bool) {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	active = client.active
	return
}

func (client *Client) Closed() (closed bool) {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	closed = client.closed
	return
}

// Registered port by name, nil if absent
func (client *Client) Port(name string) (port *Port) {
	client.mutex.Lock()
	defer client.mutex.Unlock()
	for _, p := range client.ports {
		if p.name == name {
			port = p
			return
		}
	}
	return
}

// Runs one period of nframes frames. Returns false without running anything
// when the client is not active.
func (client *Client) Cycle(nframes uint32) (ran bool, status int) {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	if !client.active || client.callback == nil {
		return
	}

	for _, port := range client.ports {
		port.beginCycle(nframes)
	}
	status = client.callback(nframes)
	for _, port := range client.ports {
		port.endCycle()
	}
	ran = true
	return
}
