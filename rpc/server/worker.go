package server

import (
	"fmt"

	"github.com/queryd-io/queryd/lib/cluster"
	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
)

// Worker executes one request at a time against the backend cluster.
// Workers are created by the pool and reused; all of them share the same
// connector and serializer.
type Worker struct {
	id         int
	busy       bool // Guarded by the pool mutex
	connector  cluster.IConnector
	serializer serializer.IRPCSerializer
}

func newWorker(id int, connector cluster.IConnector, serializer serializer.IRPCSerializer) *Worker {
	return &Worker{
		id:         id,
		connector:  connector,
		serializer: serializer,
	}
}

// ID returns the stable identity of the worker
func (w *Worker) ID() int {
	return w.id
}

// Execute runs a single serialized request and always returns a
// well-formed response message. Every failure path yields an error
// response, never a panic.
func (w *Worker) Execute(req []byte) *common.Message {
	msg := &common.Message{}
	if err := w.serializer.Deserialize(req, msg); err != nil {
		return common.NewErrorResponse(fmt.Sprintf("worker: failed to deserialize request: %s", err))
	}
	return w.execute(msg)
}

// execute dispatches on the message type
func (w *Worker) execute(req *common.Message) *common.Message {
	// Ping never touches the backend cluster
	if req.MsgType == common.MsgTPing {
		return common.NewPingResponse()
	}

	// Check for nil connector
	if w.connector == nil {
		return common.NewErrorResponse("worker: connector is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTQGet:
		if err := validateRowRequest(req); err != nil {
			return common.NewErrorResponse(err.Error())
		}
		value, ok, err := w.connector.Get(req.Table, req.Key)
		return common.NewGetResponse(value, ok, err)
	case common.MsgTQPut:
		if err := validateRowRequest(req); err != nil {
			return common.NewErrorResponse(err.Error())
		}
		err := w.connector.Put(req.Table, req.Key, req.Value)
		return common.NewPutResponse(err)
	case common.MsgTQDelete:
		if err := validateRowRequest(req); err != nil {
			return common.NewErrorResponse(err.Error())
		}
		err := w.connector.Delete(req.Table, req.Key)
		return common.NewDeleteResponse(err)
	case common.MsgTMetaTable:
		if req.Table == "" {
			return common.NewErrorResponse("worker: missing table name")
		}
		meta, err := w.connector.Table(req.Table)
		if err != nil {
			return common.NewTableMetaResponse(nil, err)
		}
		encoded, err := meta.Encode()
		return common.NewTableMetaResponse(encoded, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("worker: unsupported message type: %s", req.MsgType),
		)
	}
}

// validateRowRequest checks the fields every row operation needs
func validateRowRequest(req *common.Message) error {
	if req.Table == "" {
		return fmt.Errorf("worker: missing table name")
	}
	if req.Key == "" {
		return fmt.Errorf("worker: missing row key")
	}
	return nil
}
