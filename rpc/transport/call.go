package transport

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyResponded is returned when RespondSuccess is called more than
// once for the same inbound call.
var ErrAlreadyResponded = errors.New("inbound call already responded")

// InboundCall represents one request delivered by a server transport.
// It carries the serialized request bytes and an opaque reply destination.
// The transport owns the call; handlers borrow it for the duration of one
// dispatch and must respond exactly once.
type InboundCall struct {
	body      []byte
	respond   func(resp []byte) error
	responded atomic.Bool
}

// NewInboundCall creates a new inbound call from the raw request bytes and
// a reply function provided by the transport
func NewInboundCall(body []byte, respond func(resp []byte) error) *InboundCall {
	return &InboundCall{
		body:    body,
		respond: respond,
	}
}

// SerializedRequest returns the raw request bytes of the call
func (c *InboundCall) SerializedRequest() []byte {
	return c.body
}

// RespondSuccess writes the serialized response into the reply destination
// and signals the transport to send a success completion. It may be called
// at most once; later calls return ErrAlreadyResponded.
func (c *InboundCall) RespondSuccess(resp []byte) error {
	if c.respond == nil {
		return errors.New("inbound call has no reply destination")
	}
	if !c.responded.CompareAndSwap(false, true) {
		return ErrAlreadyResponded
	}
	return c.respond(resp)
}

// Responded reports whether the call has already been responded to
func (c *InboundCall) Responded() bool {
	return c.responded.Load()
}
