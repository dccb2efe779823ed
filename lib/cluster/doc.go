// Package cluster implements the backend connector of the query service.
//
// The connector is the single gateway from the worker pool to the
// distributed database cluster. It is created once at startup, shared by
// all workers, and holds the coordinator client together with a
// read-through cache for table metadata. Coordinator requests use a fixed
// timeout (DefaultRPCTimeoutSec) and the binary wire serializer.
package cluster
