// Audio backend over the JACK audio connection kit
package jack

import (
	"fmt"
	"jacl/internal/audio"

	gojack "github.com/xthexder/go-jack"
)

type Client struct {
	handle *gojack.Client
	name   string
}

type Port struct {
	handle *gojack.Port
	name   string
	kind   audio.PortKind
	writer midiWriter // Reused every period
}

type midiWriter struct {
	port   *gojack.Port
	buffer gojack.MidiBuffer
	event  gojack.MidiData
}

// Opens a client named name without starting a server
func Open(name string) (client *Client, err error) {
	handle, status := gojack.ClientOpen(name, gojack.NoStartServer)
	if handle == nil {
		if status != 0 {
			err = fmt.Errorf("jack_client_open() failed: %v (status 0x%x)", gojack.Strerror(status), status)
		} else {
			err = fmt.Errorf("jack_client_open() failed with unknown error")
		}
		return
	}

	client = &Client{
		handle: handle,
		name:   name,
	}
	return
}

func (client *Client) Name() (name string) {
	name = client.name
	return
}

func (client *Client) SetProcessCallback(callback audio.ProcessCallback) (err error) {
	status := client.handle.SetProcessCallback(func(nframes uint32) int {
		return callback(nframes)
	})
	if status != 0 {
		err = fmt.Errorf("jack_set_process_callback() failed: %v", gojack.Strerror(status))
	}
	return
}

func (client *Client) RegisterPort(name string, kind audio.PortKind, direction audio.Direction) (port audio.Port, err error) {
	portType := gojack.DEFAULT_AUDIO_TYPE
	if kind == audio.MidiPort {
		portType = gojack.DEFAULT_MIDI_TYPE
	}

	var handle *gojack.Port
	if direction == audio.Output {
		handle = client.handle.PortRegister(name, portType, gojack.PortIsOutput, 0)
	} else {
		handle = client.handle.PortRegister(name, portType, gojack.PortIsInput, 0)
	}
	if handle == nil {
		err = fmt.Errorf("jack_port_register() failed for port '%s'", name)
		return
	}

	port = &Port{
		handle: handle,
		name:   name,
		kind:   kind,
		writer: midiWriter{port: handle},
	}
	return
}

// The binding exposes no metadata API
func (client *Client) SetPortProperty(port audio.Port, key, value, valueType string) (err error) {
	err = audio.ErrUnsupported
	return
}

func (client *Client) Activate() (err error) {
	status := client.handle.Activate()
	if status != 0 {
		err = fmt.Errorf("jack_activate() failed: %v", gojack.Strerror(status))
	}
	return
}

func (client *Client) Close() (err error) {
	status := client.handle.Close()
	if status != 0 {
		err = fmt.Errorf("jack_client_close() failed: %v", gojack.Strerror(status))
	}
	return
}
