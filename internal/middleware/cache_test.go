package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	body := []byte(`[{"id":1}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}

	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
		t.Errorf("content type = %q", gotHdr.Get(echo.HeaderContentType))
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadMalformed(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, {0, 0, 0, 200, 0, 0, 0, 99}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload(%v) accepted malformed input", bs)
		}
	}
}

func TestCaptureWriterHonorsLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 5}

	if _, err := cw.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// The client still receives everything; only the capture is truncated.
	if rec.Body.String() != "hello world" {
		t.Errorf("client body = %q", rec.Body.String())
	}
	if cw.buf.String() != "hello" {
		t.Errorf("captured = %q, want truncated to limit", cw.buf.String())
	}
	if cw.size != int64(len("hello world")) {
		t.Errorf("size = %d, want full length", cw.size)
	}
}

func TestRateKeyScopes(t *testing.T) {
	e := echo.New()
	newCtx := func(addr string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/v1/seats", nil)
		req.RemoteAddr = addr
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/seats")
		return c
	}

	a := rateKey("rl", newCtx("10.0.0.9:1234"))
	b := rateKey("rl", newCtx("10.0.0.10:1234"))
	if a == b {
		t.Error("distinct client IPs share a bucket")
	}
	if want := "GET /v1/seats"; !bytes.Contains([]byte(a), []byte(want)) {
		t.Errorf("key %q missing route %q", a, want)
	}

	// The limiter runs pre-auth, so context identity must not change the key.
	c := newCtx("10.0.0.9:1234")
	c.Set("user_id", uint64(7))
	if got := rateKey("rl", c); got != a {
		t.Errorf("identity leaked into the bucket key: %q vs %q", got, a)
	}
}

func TestAsInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{int64(5), 5},
		{7, 7},
		{3.9, 3},
		{"11", 11},
		{"junk", 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := asInt64(tc.in); got != tc.want {
			t.Errorf("asInt64(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
