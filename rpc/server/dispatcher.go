package server

import (
	"fmt"
	"time"

	"github.com/queryd-io/queryd/rpc/serializer"
	"github.com/queryd-io/queryd/rpc/transport"
)

// dispatcher runs the synchronous per-call sequence: acquire a worker,
// execute the request, serialize and send the response, release the
// worker. The three stage latencies are recorded on the way.
type dispatcher struct {
	pool       *workerPool
	serializer serializer.IRPCSerializer
	metrics    *serviceMetrics
}

func newDispatcher(pool *workerPool, serializer serializer.IRPCSerializer, metrics *serviceMetrics) *dispatcher {
	return &dispatcher{
		pool:       pool,
		serializer: serializer,
		metrics:    metrics,
	}
}

// Handle processes a single inbound call. Application errors ride inside
// the response payload and still count as transport success; the returned
// error covers malformed calls and transport failures only. The worker is
// released on every exit path, strictly after the response is sent.
func (d *dispatcher) Handle(call *transport.InboundCall) error {
	if call == nil {
		return fmt.Errorf("dispatcher: nil call")
	}
	req := call.SerializedRequest()
	if len(req) == 0 {
		return fmt.Errorf("dispatcher: empty request")
	}

	received := time.Now()

	// Acquire a worker (never fails, may grow the pool)
	w := d.pool.Acquire()
	defer d.pool.Release(w)
	acquired := time.Now()
	d.metrics.workerAcquire.Update(micros(acquired.Sub(received)))

	// Execute (always yields a well-formed response)
	resp := w.Execute(req)
	processed := time.Now()
	d.metrics.requestProcess.Update(micros(processed.Sub(acquired)))

	// Serialize and send the response
	respBytes, err := d.serializer.Serialize(*resp)
	if err != nil {
		return fmt.Errorf("dispatcher: failed to serialize response: %v", err)
	}
	if err := call.RespondSuccess(respBytes); err != nil {
		return fmt.Errorf("dispatcher: failed to respond: %v", err)
	}
	d.metrics.responseEnqueue.Update(micros(time.Since(processed)))

	return nil
}
