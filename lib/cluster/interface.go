package cluster

import (
	"github.com/queryd-io/queryd/rpc/common"
)

// DefaultRPCTimeoutSec is the fixed timeout for all coordinator requests.
// Every connector uses this value; it is intentionally not configurable
// per request.
const DefaultRPCTimeoutSec = 5

// IConnector is the interface all workers use to talk to the backend
// cluster. A single connector is created at service startup and shared
// read-only by every worker.
type IConnector interface {
	// Get reads a row by table and key. The boolean return reports
	// whether the row exists.
	Get(table, key string) (value []byte, ok bool, err error)

	// Put inserts or updates a row.
	Put(table, key string, value []byte) error

	// Delete removes a row. Deleting an absent row is not an error.
	Delete(table, key string) error

	// Table returns the metadata of the given table. Results are cached;
	// only the first lookup per table reaches the coordinators.
	Table(name string) (*common.TableMeta, error)

	// Close releases the coordinator connections.
	Close() error
}
