// Package server implements the request-dispatch core of queryd.
//
// A QueryService accepts serialized requests over an RPC transport and
// routes each one through a fully synchronous dispatch sequence: a worker
// is acquired from the pool, the worker executes the request against the
// backend cluster, the response is serialized and sent, and the worker is
// released. The pool grows on demand and never shrinks; three histograms
// record the latency of the acquire, process and respond stages in
// microseconds.
package server
