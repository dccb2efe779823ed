// Package common contains the shared building blocks of the queryd RPC
// surface: the wire Message used for both requests and responses, the
// table-metadata types, the server and client configuration structs and
// the logging setup.
//
// The Message struct is deliberately a single flat type. Which fields are
// meaningful depends on the MsgType; factory functions (NewGetRequest,
// NewGetResponse, ...) document the valid combinations. This keeps every
// serializer implementation trivial and makes the protocol easy to evolve:
// new operations add a MessageType constant plus factories, nothing else.
//
// Application-level failures travel inside a Message via the Err field.
// A response with a non-empty Err (or MsgType MsgTError) is still a valid,
// serializable response and is delivered over the transport as a success.
package common
