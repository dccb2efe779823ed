package base

import (
	"bytes"
	"net"
	"testing"
)

// roundTrip writes a frame into one end of a pipe and reads it from the other
func roundTrip(t *testing.T, requestID uint64, payload []byte, buf []byte) (uint64, []byte) {
	t.Helper()

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- writeFrame(client, requestID, payload)
	}()

	gotID, gotData, err := readFrame(server, buf)
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}

	return gotID, gotData
}

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte("hello queryd")

	gotID, gotData := roundTrip(t, 42, payload, make([]byte, 1024))

	if gotID != 42 {
		t.Errorf("expected requestID 42, got %d", gotID)
	}
	if !bytes.Equal(gotData, payload) {
		t.Errorf("expected payload %q, got %q", payload, gotData)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	gotID, gotData := roundTrip(t, 7, nil, make([]byte, 64))

	if gotID != 7 {
		t.Errorf("expected requestID 7, got %d", gotID)
	}
	if len(gotData) != 0 {
		t.Errorf("expected empty payload, got %d bytes", len(gotData))
	}
}

func TestFrameSmallBuffer(t *testing.T) {
	// The payload exceeds the provided buffer, readFrame must allocate
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	gotID, gotData := roundTrip(t, 1001, payload, make([]byte, 16))

	if gotID != 1001 {
		t.Errorf("expected requestID 1001, got %d", gotID)
	}
	if !bytes.Equal(gotData, payload) {
		t.Error("payload mismatch after round trip with small buffer")
	}
}

func TestFrameNilBuffer(t *testing.T) {
	payload := []byte("nil buffer")

	gotID, gotData := roundTrip(t, 3, payload, nil)

	if gotID != 3 {
		t.Errorf("expected requestID 3, got %d", gotID)
	}
	if !bytes.Equal(gotData, payload) {
		t.Errorf("expected payload %q, got %q", payload, gotData)
	}
}

func TestReadFrameTruncatedHeader(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		// Write half a header and close the connection
		client.Write(make([]byte, headerSize/2))
		client.Close()
	}()

	if _, _, err := readFrame(server, nil); err == nil {
		t.Error("expected error for truncated header")
	}
}
