package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Table string `json:"table,omitempty"` // Used for: Get, Put, Delete, TableMeta
	Key   string `json:"key,omitempty"`   // Used for: Get, Put, Delete
	Value []byte `json:"value,omitempty"` // Used for: Put (request), Get (response)

	// Response only fields
	Ok  bool   `json:"ok,omitempty"`  // Used for: Get responses (value found)
	Err string `json:"err,omitempty"` // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Used for: TableMeta responses (encoded TableMeta)
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewPingRequest creates a new Ping request
func NewPingRequest() *Message {
	return &Message{
		MsgType: MsgTPing,
	}
}

// NewPingResponse creates a new Ping response
func NewPingResponse() *Message {
	return &Message{
		MsgType: MsgTPing,
		Ok:      true,
	}
}

// NewGetRequest creates a new Get request
func NewGetRequest(table, key string) *Message {
	return &Message{
		MsgType: MsgTQGet,
		Table:   table,
		Key:     key,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(value []byte, ok bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTQGet,
		Ok:      ok,
		Value:   value,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewPutRequest creates a new Put request
func NewPutRequest(table, key string, value []byte) *Message {
	return &Message{
		MsgType: MsgTQPut,
		Table:   table,
		Key:     key,
		Value:   value,
	}
}

// NewPutResponse creates a new Put response
func NewPutResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTQPut,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(table, key string) *Message {
	return &Message{
		MsgType: MsgTQDelete,
		Table:   table,
		Key:     key,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTQDelete,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewTableMetaRequest creates a new TableMeta request
func NewTableMetaRequest(table string) *Message {
	return &Message{
		MsgType: MsgTMetaTable,
		Table:   table,
	}
}

// NewTableMetaResponse creates a new TableMeta response
// The meta parameter carries the encoded TableMeta of the requested table
func NewTableMetaResponse(meta []byte, err error) *Message {
	msg := &Message{
		MsgType: MsgTMetaTable,
		Meta:    meta,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTPing:
		return "ping"
	case MsgTQGet:
		return "get"
	case MsgTQPut:
		return "put"
	case MsgTQDelete:
		return "delete"
	case MsgTMetaTable:
		return "tableMeta"
	case MsgTError:
		return "error"
	case MsgTSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "ping":
		*t = MsgTPing
	case "get":
		*t = MsgTQGet
	case "put":
		*t = MsgTQPut
	case "delete":
		*t = MsgTQDelete
	case "tableMeta":
		*t = MsgTMetaTable
	case "error":
		*t = MsgTError
	case "success":
		*t = MsgTSuccess
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Service operations

	MsgTPing // Liveness check, never touches the backend cluster

	// Query operations

	MsgTQGet    // Read a row by table and key
	MsgTQPut    // Insert or update a row
	MsgTQDelete // Delete a row

	// Metadata operations

	MsgTMetaTable // Fetch the metadata of a table
)
