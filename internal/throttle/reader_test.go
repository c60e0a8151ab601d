package throttle

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewReader_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		bps    int64
		expErr error
	}{
		{
			name:   "Invalid rate (zero)",
			bps:    0,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid rate (negative)",
			bps:    -5,
			expErr: ErrMustNotBeZero,
		},
		{
			name: "Valid input",
			bps:  1024,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(t.Context(), strings.NewReader("x"), tc.bps, nil)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
			} else {
				if err != nil {
					t.Errorf("exp nil err, got: %v", err)
				}

				if r == nil {
					t.Error("exp non-nil Reader")
				}
			}
		})
	}
}

func TestReader_PassesDataThrough(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 64)

	r, err := NewReader(t.Context(), bytes.NewReader(payload), 1<<20, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Errorf("expected %d bytes back unchanged, got %d", len(payload), len(got))
	}
}

func TestReader_CapsReadAtBurst(t *testing.T) {
	r, err := NewReader(t.Context(), bytes.NewReader(make([]byte, 100)), 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]byte, 100)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if n != 10 {
		t.Errorf("expected read capped at burst 10, got %d", n)
	}
}

func TestReader_Paces(t *testing.T) {
	// Burst covers the first 20 bytes, the next 20 need ~1s of tokens at 20 B/s.
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := NewReader(t.Context(), bytes.NewReader(make([]byte, 40)), 20, func() *slog.Logger { return logger })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 800*time.Millisecond {
		t.Errorf("expected reads to be paced, finished in %v", elapsed)
	}

	if !strings.Contains(logBuf.String(), "throttle wait complete") {
		t.Errorf("expected wait to be logged, got: %s", logBuf.String())
	}
}

func TestReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	r, err := NewReader(ctx, strings.NewReader("data"), 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = r.Read(make([]byte, 4))
	if !errors.Is(err, ErrContextEnded) {
		t.Errorf("expected ErrContextEnded, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestReader_WaitExceedsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	r, err := NewReader(ctx, bytes.NewReader(make([]byte, 20)), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First byte drains the single-token burst; the second cannot be covered before the deadline.
	buf := make([]byte, 1)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("unexpected error on first read: %v", err)
	}

	_, err = r.Read(buf)
	if !errors.Is(err, ErrWaitingFailed) {
		t.Errorf("expected ErrWaitingFailed, got %v", err)
	}
}
