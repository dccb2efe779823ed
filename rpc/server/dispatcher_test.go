package server

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
	"github.com/queryd-io/queryd/rpc/transport"
)

// testDispatcher wires a dispatcher with fresh metrics over the given
// connector
func testDispatcher(poolSize int, connector *stubConnector) (*dispatcher, *workerPool, *serviceMetrics) {
	s := serializer.NewBinarySerializer()
	pool := newWorkerPool(poolSize, func(id int) *Worker {
		var w *Worker
		if connector != nil {
			w = newWorker(id, connector, s)
		} else {
			w = newWorker(id, nil, s)
		}
		return w
	})
	m := newServiceMetrics()
	return newDispatcher(pool, s, m), pool, m
}

// capturedCall wraps an InboundCall and records the response bytes
type capturedCall struct {
	call *transport.InboundCall
	resp []byte
}

func makeCall(t *testing.T, msg *common.Message) *capturedCall {
	t.Helper()
	c := &capturedCall{}
	c.call = transport.NewInboundCall(serialize(t, msg), func(resp []byte) error {
		c.resp = resp
		return nil
	})
	return c
}

// response deserializes the captured response bytes
func (c *capturedCall) response(t *testing.T) *common.Message {
	t.Helper()
	msg := &common.Message{}
	if err := serializer.NewBinarySerializer().Deserialize(c.resp, msg); err != nil {
		t.Fatalf("Failed to deserialize response: %v", err)
	}
	return msg
}

// histogramCount extracts the sample count of a histogram from the
// prometheus text output
func histogramCount(t *testing.T, m *serviceMetrics, name string) int {
	t.Helper()

	var buf bytes.Buffer
	m.WritePrometheus(&buf)

	prefix := name + "_count "
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, prefix) {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
			if err != nil {
				t.Fatalf("Failed to parse count line %q: %v", line, err)
			}
			return n
		}
	}
	return 0
}

// TestDispatcherHandleSuccess tests the full dispatch sequence for a ping
func TestDispatcherHandleSuccess(t *testing.T) {
	d, pool, _ := testDispatcher(1, nil)

	c := makeCall(t, common.NewPingRequest())
	if err := d.Handle(c.call); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !c.call.Responded() {
		t.Error("Expected the call to be responded")
	}
	resp := c.response(t)
	if resp.MsgType != common.MsgTPing || !resp.Ok {
		t.Errorf("Unexpected response: %+v", resp)
	}

	// The worker is back in the pool
	if pool.Size() != 1 {
		t.Errorf("Expected size 1, got %d", pool.Size())
	}
	w := pool.Acquire()
	if w.ID() != 0 {
		t.Errorf("Expected worker 0 to be free, got %d", w.ID())
	}
}

// TestDispatcherRecordsAllLatencies tests that one Handle updates each of
// the three histograms exactly once
func TestDispatcherRecordsAllLatencies(t *testing.T) {
	d, _, m := testDispatcher(1, nil)

	names := []string{metricWorkerAcquire, metricRequestProcess, metricResponseEnqueue}

	// Histograms start empty
	for _, name := range names {
		if n := histogramCount(t, m, name); n != 0 {
			t.Errorf("Expected empty histogram %s, got count %d", name, n)
		}
	}

	// Counts advance by exactly one per handled call
	for i := 1; i <= 3; i++ {
		c := makeCall(t, common.NewPingRequest())
		if err := d.Handle(c.call); err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
		for _, name := range names {
			if n := histogramCount(t, m, name); n != i {
				t.Errorf("After %d calls: expected count %d for %s, got %d", i, i, name, n)
			}
		}
	}
}

// TestDispatcherMalformedCalls tests that nil calls and empty requests
// return explicit errors without touching the histograms
func TestDispatcherMalformedCalls(t *testing.T) {
	d, _, m := testDispatcher(1, nil)

	if err := d.Handle(nil); err == nil {
		t.Error("Expected error for nil call")
	}

	empty := transport.NewInboundCall(nil, func([]byte) error { return nil })
	if err := d.Handle(empty); err == nil {
		t.Error("Expected error for empty request")
	}

	for _, name := range []string{metricWorkerAcquire, metricRequestProcess, metricResponseEnqueue} {
		if n := histogramCount(t, m, name); n != 0 {
			t.Errorf("Expected untouched histogram %s, got count %d", name, n)
		}
	}
}

// TestDispatcherApplicationError tests that an application error still
// completes as transport success with the error inside the payload, and
// that the worker is reusable afterwards
func TestDispatcherApplicationError(t *testing.T) {
	c := newStubConnector()
	d, pool, _ := testDispatcher(1, c)

	// A get without a row key forces an error response from the worker
	call := makeCall(t, &common.Message{MsgType: common.MsgTQGet, Table: "users"})
	if err := d.Handle(call.call); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !call.call.Responded() {
		t.Error("Expected transport success")
	}
	resp := call.response(t)
	if resp.Err == "" {
		t.Errorf("Expected error payload, got: %+v", resp)
	}

	// The same worker serves the next call
	next := makeCall(t, common.NewPingRequest())
	if err := d.Handle(next.call); err != nil {
		t.Fatalf("Handle after error failed: %v", err)
	}
	if pool.Size() != 1 {
		t.Errorf("Expected size 1, got %d", pool.Size())
	}
}

// blockingConnector blocks every Get until released, so tests can hold
// several workers busy at once
type blockingConnector struct {
	*stubConnector
	entered chan struct{}
	release chan struct{}
}

func (c *blockingConnector) Get(table, key string) ([]byte, bool, error) {
	c.entered <- struct{}{}
	<-c.release
	return []byte("value"), true, nil
}

// TestDispatcherOverlappingCalls tests that overlapping calls on a pool
// of one grow the pool and that all workers end up free
func TestDispatcherOverlappingCalls(t *testing.T) {
	blocking := &blockingConnector{
		stubConnector: newStubConnector(),
		entered:       make(chan struct{}, 3),
		release:       make(chan struct{}),
	}

	s := serializer.NewBinarySerializer()
	pool := newWorkerPool(1, func(id int) *Worker {
		return newWorker(id, blocking, s)
	})
	m := newServiceMetrics()
	d := newDispatcher(pool, s, m)

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			c := makeCall(t, common.NewGetRequest("users", "user-1"))
			if err := d.Handle(c.call); err != nil {
				t.Errorf("Handle failed: %v", err)
			}
		}()
	}

	// Wait until all three calls hold a worker
	for i := 0; i < 3; i++ {
		select {
		case <-blocking.entered:
		case <-time.After(5 * time.Second):
			t.Fatal("Timed out waiting for overlapping calls")
		}
	}

	if pool.Size() != 3 {
		t.Errorf("Expected size 3 during overlap, got %d", pool.Size())
	}

	// Let the calls finish
	close(blocking.release)
	wg.Wait()

	// All three workers are free again and no worker was double-held:
	// three acquires yield three distinct workers without growth
	seen := make(map[*Worker]bool)
	for i := 0; i < 3; i++ {
		w := pool.Acquire()
		if seen[w] {
			t.Error("Worker handed out twice")
		}
		seen[w] = true
	}
	if pool.Size() != 3 {
		t.Errorf("Expected size 3 after overlap, got %d", pool.Size())
	}
}
