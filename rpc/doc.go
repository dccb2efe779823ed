// Package rpc provides the communication layer of the query service. It
// connects clients to the dispatch core across network boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, table metadata, configuration
//     structures, and logging.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets, HTTP).
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB, Msgpack) for converting between Message objects
//     and byte arrays.
//
//   - client: The client library of the query service, exposing the
//     service operations as plain method calls.
//
//   - server: The dispatch core: the query service, its worker pool, the
//     synchronous dispatcher and the latency histograms.
package rpc
