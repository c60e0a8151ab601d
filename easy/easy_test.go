package easy_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/adamwoolhether/easycurl/easy"
)

// roundTripFunc adapts a func into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// newHandle returns a handle logging into the returned buffer at debug level.
func newHandle(t *testing.T, opts ...easy.Option) (*easy.Handle, *bytes.Buffer) {
	t.Helper()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h, err := easy.Init(append([]easy.Option{easy.WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("failed to init handle: %v", err)
	}
	t.Cleanup(h.Cleanup)

	return h, &logBuf
}

// withErrorBuffer registers a fresh error buffer on h.
func withErrorBuffer(t *testing.T, h *easy.Handle) []byte {
	t.Helper()

	buf := make([]byte, easy.ErrorSize)
	if code := h.Setopt(easy.OptErrorBuffer, easy.Buffer(buf)); code != easy.OK {
		t.Fatalf("registering error buffer: %v", code)
	}

	return buf
}

// cstr returns the NUL-terminated prefix of b.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func mustSetopt(t *testing.T, h *easy.Handle, opt easy.Opt, arg easy.Arg) {
	t.Helper()

	if code := h.Setopt(opt, arg); code != easy.OK {
		t.Fatalf("setopt %s: %v", easy.OptName(opt), code)
	}
}

// sink collects everything written through a WriteFunc.
type sink struct {
	calls int
	buf   bytes.Buffer
}

func (s *sink) write(data []byte, _ any) int {
	s.calls++
	s.buf.Write(data)
	return len(data)
}
