package throttle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Reader is an io.Reader, using the time/rate token bucket limiter
// to cap the number of bytes delivered per second.
type Reader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
	bps     int64
	logFn   func() *slog.Logger
}

// NewReader returns a Reader delivering at most bytesPerSec bytes per second
// from r. The burst equals one second worth of bytes. logFn lazily resolves
// the logger; a nil-returning logFn disables the wait logging.
func NewReader(ctx context.Context, r io.Reader, bytesPerSec int64, logFn func() *slog.Logger) (*Reader, error) {
	if bytesPerSec <= 0 {
		return nil, fmt.Errorf("bytes per second[%d] %w", bytesPerSec, ErrMustNotBeZero)
	}

	burst := bytesPerSec
	if burst > math.MaxInt32 {
		burst = math.MaxInt32
	}

	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	t := &Reader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), int(burst)),
		bps:     bytesPerSec,
		logFn:   logFn,
	}

	return t, nil
}

func (t *Reader) Read(p []byte) (int, error) {
	if err := t.ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := t.r.Read(p)
	if n <= 0 {
		return n, err
	}

	logger := t.logFn()
	if logger != nil && t.limiter.TokensAt(time.Now()) < float64(n) {
		start := time.Now()
		defer func() {
			logger.Debug("throttle wait complete", "waited", time.Since(start).String(), "rate", t.bps, "bytes", n)
		}()
	}

	if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
		return n, fmt.Errorf("%w: %w", ErrWaitingFailed, werr)
	}

	return n, err
}
