package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 64}

	body := []byte(`{"fields":[]}`)
	if _, err := cw.Write(body); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.size != int64(len(body)) {
		t.Errorf("size = %d, want %d", cw.size, len(body))
	}
	if !bytes.Equal(cw.buf.Bytes(), body) {
		t.Errorf("captured %q, want %q", cw.buf.Bytes(), body)
	}
	if !bytes.Equal(rec.Body.Bytes(), body) {
		t.Errorf("client received %q, want %q", rec.Body.Bytes(), body)
	}
}

// An oversized response must still reach the client in full, and the
// size counter must exceed the limit so the middleware knows the
// captured buffer is truncated and refuses to cache it.
func TestCaptureWriterOverLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	chunks := [][]byte{
		[]byte(`{"slots":["08:00`),
		[]byte(`","09:00"]}`),
	}
	var total int64
	for _, ch := range chunks {
		if _, err := cw.Write(ch); err != nil {
			t.Fatalf("write: %v", err)
		}
		total += int64(len(ch))
	}

	if cw.size != total {
		t.Errorf("size = %d, want %d", cw.size, total)
	}
	if cw.size <= cw.limit {
		t.Error("oversized response not flagged as over the capture limit")
	}
	if int64(cw.buf.Len()) != cw.limit {
		t.Errorf("captured %d bytes, want exactly the %d-byte limit", cw.buf.Len(), cw.limit)
	}
	if int64(rec.Body.Len()) != total {
		t.Errorf("client received %d bytes, want %d", rec.Body.Len(), total)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"id":7}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode rejected a valid payload")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header = %v", gotHdr)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsShort(t *testing.T) {
	for _, bs := range [][]byte{nil, {}, {0, 0, 0}, {0, 0, 0, 200, 0, 0, 0, 99}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("accepted malformed payload %v", bs)
		}
	}
}
