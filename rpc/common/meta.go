package common

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// --------------------------------------------------------------------------
// Table Metadata
// --------------------------------------------------------------------------

// ColumnMeta describes a single column of a table.
type ColumnMeta struct {
	Name string `msgpack:"name" json:"name"`
	Type string `msgpack:"type" json:"type"`
}

// TableMeta describes a table of the backend cluster. It is fetched from a
// coordinator once per table and then shared read-only by all workers via
// the connector's metadata cache.
type TableMeta struct {
	Name    string       `msgpack:"name" json:"name"`
	Version uint64       `msgpack:"version" json:"version"`
	Columns []ColumnMeta `msgpack:"columns" json:"columns"`
}

// Encode serializes the table metadata into the Meta field of a Message
func (m *TableMeta) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode table metadata: %w", err)
	}
	return b, nil
}

// DecodeTableMeta deserializes table metadata from the Meta field of a Message
func DecodeTableMeta(b []byte) (*TableMeta, error) {
	meta := &TableMeta{}
	if err := msgpack.Unmarshal(b, meta); err != nil {
		return nil, fmt.Errorf("failed to decode table metadata: %w", err)
	}
	return meta, nil
}
