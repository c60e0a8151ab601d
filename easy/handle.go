package easy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/adamwoolhether/easycurl/easy"

// Handle is one easy transfer: a configuration, its last results and an
// error buffer. A Handle is meant to be driven by one goroutine at a time.
type Handle struct {
	opts Options
	info ResponseInfo
	sink *ErrorSink

	log              *slog.Logger
	stdout           io.Writer
	defaultWrite     WriteFunc
	rt               http.RoundTripper
	tracer           trace.Tracer
	progressInterval time.Duration
	debug            bool

	destroyed bool
}

// Option is a functional option for configuring a [Handle] via [Init].
type Option func(*options) error

type options struct {
	logger           *slog.Logger
	stdout           io.Writer
	defaultWrite     WriteFunc
	rt               http.RoundTripper
	tp               trace.TracerProvider
	progressInterval *time.Duration
	debug            bool
}

// WithLogger injects a custom [slog.Logger] into the [Handle].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithStdout sets where body data goes when no write callback is set and
// WRITEDATA is not an io.Writer. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return errors.New("stdout writer must not be nil")
		}
		o.stdout = w
		return nil
	}
}

// WithDefaultWrite replaces the built-in default write callback entirely.
// It takes precedence over WithStdout.
func WithDefaultWrite(fn WriteFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return errors.New("default write func must not be nil")
		}
		o.defaultWrite = fn
		return nil
	}
}

// WithTransport sets the base [http.RoundTripper]. A custom transport owns
// its own dialing, so the connect timeout is not applied to it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTracerProvider sets the provider the perform span is created from.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		o.tp = tp
		return nil
	}
}

// WithProgressInterval sets the minimum gap between default progress log lines.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.New("progress interval must be positive")
		}
		o.progressInterval = &d
		return nil
	}
}

// WithDebug enables diagnostics for unimplemented info identifiers.
func WithDebug(enabled bool) Option {
	return func(o *options) error {
		o.debug = enabled
		return nil
	}
}

// Init creates a live handle with default options.
func Init(optFns ...Option) (*Handle, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying handle option: %w", err)
		}
	}

	h := &Handle{
		opts:             defaultOptions(),
		sink:             newErrorSink(),
		log:              slog.Default(),
		stdout:           os.Stdout,
		defaultWrite:     opts.defaultWrite,
		rt:               opts.rt,
		progressInterval: time.Second,
		debug:            opts.debug,
	}

	if opts.logger != nil {
		h.log = opts.logger
	}

	if opts.stdout != nil {
		h.stdout = opts.stdout
	}

	if opts.progressInterval != nil {
		h.progressInterval = *opts.progressInterval
	}

	tp := opts.tp
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	h.tracer = tp.Tracer(tracerName)

	return h, nil
}

// Reset restores every option to its default and clears the response info.
// The handle keeps its identity; the error buffer registration lives in the
// options and is cleared with them.
func (h *Handle) Reset() {
	if !h.live() {
		return
	}

	h.opts = defaultOptions()
	h.info = ResponseInfo{}
	h.sink.buf.SetBuffer(nil)
}

// Cleanup destroys the handle. Every later call on it reports
// BadFunctionArgument, and references to its error buffer go quiet.
// Calling Cleanup on a nil or destroyed handle does nothing.
func (h *Handle) Cleanup() {
	if !h.live() {
		return
	}

	h.sink.close()
	h.opts = Options{}
	h.info = ResponseInfo{}
	h.destroyed = true
}

// DupHandle returns a new handle with a copy of h's options, its own error
// sink and empty response info. The error buffer registration is shared.
func (h *Handle) DupHandle() (*Handle, error) {
	if !h.live() {
		return nil, ErrDestroyed
	}

	dup := *h
	dup.sink = newErrorSink()
	dup.info = ResponseInfo{}
	dup.sink.buf.SetBuffer(dup.opts.ErrorBuffer)

	return &dup, nil
}

// Options returns a copy of the current configuration.
func (h *Handle) Options() Options {
	if !h.live() {
		return Options{}
	}
	return h.opts
}

// Info returns a copy of the results of the most recent perform.
func (h *Handle) Info() ResponseInfo {
	if !h.live() {
		return ResponseInfo{}
	}
	return h.info
}

// ErrorRef returns a weak reference to the handle's error buffer.
func (h *Handle) ErrorRef() SinkRef {
	if !h.live() {
		return SinkRef{}
	}
	return h.sink.Ref()
}

// Destroyed reports whether Cleanup has run.
func (h *Handle) Destroyed() bool {
	return h == nil || h.destroyed
}

func (h *Handle) live() bool {
	return h != nil && !h.destroyed
}

// fail writes err to the error buffer and returns code.
func (h *Handle) fail(code Code, err error) Code {
	h.log.Debug("easy handle error", "code", code.String(), "error", err)
	return h.sink.buf.SetError(code, err.Error())
}
