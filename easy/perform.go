package easy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/adamwoolhether/easycurl/internal/throttle"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Perform runs the configured transfer to completion on the calling
// goroutine. All callbacks run synchronously from inside Perform.
// Without a URL it returns OK without doing anything.
func (h *Handle) Perform() Code {
	if !h.live() {
		return BadFunctionArgument
	}

	if h.opts.URL == nil {
		return OK
	}

	ctx, span := h.tracer.Start(context.Background(), "easy.perform",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("url.full", *h.opts.URL),
			attribute.String("http.request.method", h.opts.method()),
		),
	)
	defer span.End()

	code := h.perform(ctx)

	span.SetAttributes(
		attribute.Int("http.response.status_code", h.info.ResponseCode),
		attribute.Int64("easycurl.size_download", h.info.SizeDownload),
		attribute.String("easycurl.result", code.String()),
	)
	if code != OK {
		span.SetStatus(codes.Error, StrError(code))
	}

	return code
}

func (h *Handle) perform(ctx context.Context) Code {
	req, err := h.newRequest(ctx)
	if err != nil {
		return h.fail(codeOf(err, URLMalformat), err)
	}

	start := time.Now()
	defer func() {
		h.info.TotalTime = time.Since(start)
	}()

	var redirects int
	resp, err := h.newClient(&redirects).Do(req)
	if err != nil {
		return h.fail(HTTPReturnedError, fmt.Errorf("exec http do: %w", err))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.log.Error("failed to close response body", "error", err)
		}
	}()

	h.record(resp, redirects)

	if code := h.forwardHeaders(resp.Header); code != OK {
		return code
	}

	return h.streamBody(ctx, resp)
}

// record fills the response info known before the body is read.
func (h *Handle) record(resp *http.Response, redirects int) {
	h.info.ResponseCode = resp.StatusCode
	h.info.RedirectCount = redirects

	effective := resp.Request.URL.String()
	h.info.EffectiveURL = &effective

	h.info.ContentLengthDownload = nil
	if resp.ContentLength >= 0 {
		cl := resp.ContentLength
		h.info.ContentLengthDownload = &cl
	}

	h.info.ContentType = nil
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		h.info.ContentType = &ct
	}

	if h.opts.FileTime {
		h.info.FileTime = parseLastModified(resp.Header.Get("Last-Modified"))
	}
}

// parseLastModified reads an RFC 2822 date, falling back to the other
// HTTP date formats. It returns nil when the header is absent or unparsable.
func parseLastModified(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	if t, err := mail.ParseDate(v); err == nil {
		return &t
	}
	if t, err := http.ParseTime(v); err == nil {
		return &t
	}

	return nil
}

// forwardHeaders hands each response header to the header callback as a
// "Name: value\r\n" line, in name order and once per value.
func (h *Handle) forwardHeaders(header http.Header) Code {
	fn, data, ok := h.headerWriter()
	if !ok {
		return OK
	}

	for _, name := range slices.Sorted(maps.Keys(header)) {
		for _, value := range header[name] {
			line := []byte(name + ": " + value + "\r\n")
			if n := fn(line, data); n != len(line) {
				return h.fail(WriteError, fmt.Errorf("header callback consumed %d of %d bytes", n, len(line)))
			}
		}
	}

	return OK
}

// streamBody forwards the body to the write callback chunk by chunk,
// counting downloaded bytes and reporting progress after every chunk.
func (h *Handle) streamBody(ctx context.Context, resp *http.Response) Code {
	write, data := h.writer()
	progress, pdata := h.progress()

	var dltotal int64
	if h.info.ContentLengthDownload != nil {
		dltotal = *h.info.ContentLengthDownload
	}

	var body io.Reader = resp.Body
	if h.opts.MaxRecvSpeed > 0 {
		tr, err := throttle.NewReader(ctx, body, h.opts.MaxRecvSpeed, func() *slog.Logger { return h.log })
		if err != nil {
			return h.fail(BadFunctionArgument, fmt.Errorf("configuring throttle: %w", err))
		}
		body = tr
	}

	h.info.SizeDownload = 0
	buf := make([]byte, MaxWriteSize)

	for {
		n, err := body.Read(buf)
		if n > 0 {
			if got := write(buf[:n], data); got != n {
				return h.fail(WriteError, fmt.Errorf("write callback consumed %d of %d bytes", got, n))
			}

			h.info.SizeDownload += int64(n)

			if progress != nil {
				// Cancellation through the return value is not supported.
				_ = progress(dltotal, h.info.SizeDownload, 0, 0, pdata)
			}
		}

		if errors.Is(err, io.EOF) {
			return OK
		}
		if err != nil {
			return h.fail(HTTPReturnedError, fmt.Errorf("reading response body: %w", err))
		}
	}
}

// writer resolves the body callback: the caller's, else the injected
// default, else the stdout writer.
func (h *Handle) writer() (WriteFunc, any) {
	switch {
	case h.opts.WriteFunction != nil:
		return h.opts.WriteFunction, h.opts.WriteData
	case h.defaultWrite != nil:
		return h.defaultWrite, h.opts.WriteData
	}
	return h.writeStdout, h.opts.WriteData
}

// headerWriter resolves the header callback. An explicit HEADERFUNCTION
// wins, including a nil one which disables forwarding. Without one, a set
// HEADERDATA routes headers through the body callback.
func (h *Handle) headerWriter() (WriteFunc, any, bool) {
	switch {
	case h.opts.HeaderFunctionSet:
		if h.opts.HeaderFunction == nil {
			return nil, nil, false
		}
		return h.opts.HeaderFunction, h.opts.HeaderData, true
	case h.opts.HeaderData != nil:
		fn, _ := h.writer()
		return fn, h.opts.HeaderData, true
	}
	return nil, nil, false
}

// progress resolves the progress callback, or nil when progress is off.
func (h *Handle) progress() (ProgressFunc, any) {
	if h.opts.NoProgress {
		return nil, nil
	}
	if h.opts.ProgressFunction != nil {
		return h.opts.ProgressFunction, h.opts.ProgressData
	}
	return newProgressMeter(h.log, h.progressInterval).progress, nil
}

// writeStdout writes to userdata when it is an io.Writer, else to stdout.
func (h *Handle) writeStdout(data []byte, userdata any) int {
	w := h.stdout
	if uw, ok := userdata.(io.Writer); ok {
		w = uw
	}

	n, err := w.Write(data)
	if err != nil {
		h.log.Error("default write failed", "error", err)
	}

	return n
}
