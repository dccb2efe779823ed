package client

import (
	"bytes"
	"testing"

	"github.com/queryd-io/queryd/rpc/common"
	"github.com/queryd-io/queryd/rpc/serializer"
)

// loopbackTransport answers every request in-process with a canned
// handler, bypassing the network
type loopbackTransport struct {
	handle    func(req *common.Message) *common.Message
	connected bool
}

func (l *loopbackTransport) Connect(config common.ClientConfig) error {
	l.connected = true
	return nil
}

func (l *loopbackTransport) Send(req []byte) ([]byte, error) {
	s := serializer.NewBinarySerializer()
	msg := &common.Message{}
	if err := s.Deserialize(req, msg); err != nil {
		return nil, err
	}
	return s.Serialize(*l.handle(msg))
}

func (l *loopbackTransport) Close() error {
	l.connected = false
	return nil
}

func newTestClient(t *testing.T, handle func(req *common.Message) *common.Message) IQueryClient {
	t.Helper()
	c, err := NewQueryClient(
		common.ClientConfig{Endpoints: []string{"loopback"}},
		&loopbackTransport{handle: handle},
		serializer.NewBinarySerializer(),
	)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

// TestClientPing tests the liveness check
func TestClientPing(t *testing.T) {
	c := newTestClient(t, func(req *common.Message) *common.Message {
		if req.MsgType != common.MsgTPing {
			return common.NewErrorResponse("unexpected request")
		}
		return common.NewPingResponse()
	})

	if err := c.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

// TestClientRowOperations tests get, put and delete round trips
func TestClientRowOperations(t *testing.T) {
	rows := map[string][]byte{}

	c := newTestClient(t, func(req *common.Message) *common.Message {
		k := req.Table + "/" + req.Key
		switch req.MsgType {
		case common.MsgTQPut:
			rows[k] = req.Value
			return common.NewPutResponse(nil)
		case common.MsgTQGet:
			value, ok := rows[k]
			return common.NewGetResponse(value, ok, nil)
		case common.MsgTQDelete:
			delete(rows, k)
			return common.NewDeleteResponse(nil)
		default:
			return common.NewErrorResponse("unexpected request")
		}
	})

	if err := c.Put("users", "user-1", []byte("alice")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, ok, err := c.Get("users", "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || !bytes.Equal(value, []byte("alice")) {
		t.Errorf("Expected (alice, true), got (%s, %t)", value, ok)
	}
	if err := c.Delete("users", "user-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := c.Get("users", "user-1"); ok {
		t.Error("Expected row to be gone")
	}
}

// TestClientErrorResponse tests that error responses surface as errors
func TestClientErrorResponse(t *testing.T) {
	c := newTestClient(t, func(req *common.Message) *common.Message {
		return common.NewErrorResponse("boom")
	})

	if err := c.Ping(); err == nil {
		t.Error("Expected error from error response")
	}
	if _, _, err := c.Get("users", "user-1"); err == nil {
		t.Error("Expected error from error response")
	}
}

// TestClientTableMeta tests the metadata round trip
func TestClientTableMeta(t *testing.T) {
	meta := &common.TableMeta{
		Name:    "events",
		Version: 7,
		Columns: []common.ColumnMeta{{Name: "ts", Type: "timestamp"}},
	}
	encoded, err := meta.Encode()
	if err != nil {
		t.Fatalf("Failed to encode meta: %v", err)
	}

	c := newTestClient(t, func(req *common.Message) *common.Message {
		return common.NewTableMetaResponse(encoded, nil)
	})

	got, err := c.TableMeta("events")
	if err != nil {
		t.Fatalf("TableMeta failed: %v", err)
	}
	if got.Name != "events" || got.Version != 7 || len(got.Columns) != 1 {
		t.Errorf("Unexpected metadata: %+v", got)
	}
}
