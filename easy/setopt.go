package easy

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// setter decodes one option's argument and applies it to a copy of the store.
type setter struct {
	name  string
	kind  Kind
	apply func(o *Options, a Arg) error
}

var setters = map[Opt]setter{
	OptURL: {"CURLOPT_URL", KindString, func(o *Options, a Arg) error {
		if a.null {
			o.URL = nil
			return nil
		}
		s, err := a.text()
		if err != nil {
			return &Error{Code: URLMalformat, Err: err}
		}
		o.URL = &s
		return nil
	}},
	OptFollowLocation: {"CURLOPT_FOLLOWLOCATION", KindLong, func(o *Options, a Arg) error {
		o.FollowLocation = a.flag()
		return nil
	}},
	OptPostFields: {"CURLOPT_POSTFIELDS", KindBytes, func(o *Options, a Arg) error {
		// The method stays POST even when the payload is cleared.
		o.Method = http.MethodPost
		if a.null {
			o.PostFields = nil
			return nil
		}
		o.PostFields = append([]byte{}, a.b...)
		return nil
	}},
	OptPostFieldSize: {"CURLOPT_POSTFIELDSIZE", KindLong, func(o *Options, a Arg) error {
		if a.num < -1 {
			return fmt.Errorf("%w: %d", ErrOutOfRange, a.num)
		}
		o.PostFieldSize = a.num
		return nil
	}},
	OptErrorBuffer: {"CURLOPT_ERRORBUFFER", KindBuffer, func(o *Options, a Arg) error {
		if a.null {
			o.ErrorBuffer = nil
			return nil
		}
		if len(a.b) == 0 {
			return fmt.Errorf("%w: empty error buffer", ErrOutOfRange)
		}
		o.ErrorBuffer = a.b
		return nil
	}},
	OptConnectTimeout: {"CURLOPT_CONNECTTIMEOUT", KindLong, func(o *Options, a Arg) error {
		d, err := duration(a.num, time.Second)
		if err != nil {
			return err
		}
		if d == 0 {
			d = DefaultConnectTimeout
		}
		o.ConnectTimeout = &d
		return nil
	}},
	OptConnectTimeoutMS: {"CURLOPT_CONNECTTIMEOUT_MS", KindLong, func(o *Options, a Arg) error {
		d, err := duration(a.num, time.Millisecond)
		if err != nil {
			return err
		}
		if d == 0 {
			o.ConnectTimeout = nil
			return nil
		}
		o.ConnectTimeout = &d
		return nil
	}},
	OptTimeout: {"CURLOPT_TIMEOUT", KindLong, func(o *Options, a Arg) error {
		return setTimeout(&o.Timeout, a.num, time.Second)
	}},
	OptTimeoutMS: {"CURLOPT_TIMEOUT_MS", KindLong, func(o *Options, a Arg) error {
		return setTimeout(&o.Timeout, a.num, time.Millisecond)
	}},
	OptFileTime: {"CURLOPT_FILETIME", KindLong, func(o *Options, a Arg) error {
		o.FileTime = a.flag()
		return nil
	}},
	OptNoProgress: {"CURLOPT_NOPROGRESS", KindLong, func(o *Options, a Arg) error {
		o.NoProgress = a.flag()
		return nil
	}},
	OptUserAgent: {"CURLOPT_USERAGENT", KindString, func(o *Options, a Arg) error {
		if a.null {
			o.UserAgent = nil
			return nil
		}
		s, err := a.text()
		if err != nil {
			return err
		}
		o.UserAgent = &s
		return nil
	}},
	OptCustomRequest: {"CURLOPT_CUSTOMREQUEST", KindString, func(o *Options, a Arg) error {
		if a.null {
			o.CustomRequest = nil
			return nil
		}
		s, err := a.text()
		if err != nil {
			return err
		}
		if s == "" || strings.ContainsAny(s, " \t\r\n") {
			return fmt.Errorf("%w: method %q", ErrOutOfRange, s)
		}
		o.CustomRequest = &s
		return nil
	}},
	OptHTTPHeader: {"CURLOPT_HTTPHEADER", KindList, func(o *Options, a Arg) error {
		o.HTTPHeader = a.list
		return nil
	}},
	OptMaxRecvSpeedLarge: {"CURLOPT_MAX_RECV_SPEED_LARGE", KindOffT, func(o *Options, a Arg) error {
		if a.num < 0 {
			return fmt.Errorf("%w: %d", ErrOutOfRange, a.num)
		}
		o.MaxRecvSpeed = a.num
		return nil
	}},
	OptMimePost: {"CURLOPT_MIMEPOST", KindMime, func(o *Options, a Arg) error {
		if a.null {
			o.MimePost = nil
			return nil
		}
		if a.mime.freed {
			return fmt.Errorf("%w: mime already freed", ErrOutOfRange)
		}
		o.MimePost = a.mime
		o.Method = http.MethodPost
		return nil
	}},
	OptWriteFunction: {"CURLOPT_WRITEFUNCTION", KindFunc, func(o *Options, a Arg) error {
		fn, err := a.writeFunc()
		if err != nil {
			return err
		}
		o.WriteFunction = fn
		return nil
	}},
	OptWriteData: {"CURLOPT_WRITEDATA", KindData, func(o *Options, a Arg) error {
		o.WriteData = a.data
		return nil
	}},
	OptHeaderFunction: {"CURLOPT_HEADERFUNCTION", KindFunc, func(o *Options, a Arg) error {
		fn, err := a.writeFunc()
		if err != nil {
			return err
		}
		o.HeaderFunction = fn
		o.HeaderFunctionSet = true
		return nil
	}},
	OptHeaderData: {"CURLOPT_HEADERDATA", KindData, func(o *Options, a Arg) error {
		o.HeaderData = a.data
		return nil
	}},
	OptProgressFunction: {"CURLOPT_PROGRESSFUNCTION", KindFunc, func(o *Options, a Arg) error {
		if a.null {
			o.ProgressFunction = nil
			return nil
		}
		switch fn := a.fn.(type) {
		case ProgressFunc:
			o.ProgressFunction = fn
		case func(dltotal, dlnow, ultotal, ulnow int64, userdata any) int:
			o.ProgressFunction = fn
		default:
			return fmt.Errorf("%w: %T", ErrFuncType, a.fn)
		}
		return nil
	}},
	OptProgressData: {"CURLOPT_PROGRESSDATA", KindData, func(o *Options, a Arg) error {
		o.ProgressData = a.data
		return nil
	}},
}

// KindOf reports the argument shape opt expects, and whether opt is known.
// The C boundary uses it to decode untyped arguments before calling Setopt.
func KindOf(opt Opt) (Kind, bool) {
	s, ok := setters[opt]
	return s.kind, ok
}

// OptName returns the libcurl name of opt, or "" when opt is unknown.
func OptName(opt Opt) string {
	return setters[opt].name
}

// Setopt decodes arg for opt and applies it. On failure the store is left
// untouched for that option and a message is written to the error buffer.
func (h *Handle) Setopt(opt Opt, arg Arg) Code {
	if !h.live() {
		return BadFunctionArgument
	}

	s, ok := setters[opt]
	if !ok {
		h.log.Warn("unknown option", "option", int(opt))
		return UnknownOption
	}

	if arg.kind != s.kind {
		return h.fail(BadFunctionArgument, fmt.Errorf("%s: %w: got %s, want %s", s.name, ErrKindMismatch, arg.kind, s.kind))
	}

	next := h.opts
	if err := s.apply(&next, arg); err != nil {
		return h.fail(codeOf(err, BadFunctionArgument), fmt.Errorf("%s: %w", s.name, err))
	}
	h.opts = next

	if opt == OptErrorBuffer {
		h.sink.buf.SetBuffer(h.opts.ErrorBuffer)
	}

	return OK
}

// flag decodes a boolean option. Only the value 1 is true.
func (a Arg) flag() bool {
	return a.num == 1
}

func (a Arg) writeFunc() (WriteFunc, error) {
	if a.null {
		return nil, nil
	}
	switch fn := a.fn.(type) {
	case WriteFunc:
		return fn, nil
	case func(data []byte, userdata any) int:
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrFuncType, a.fn)
}

func duration(v int64, unit time.Duration) (time.Duration, error) {
	if v < 0 || v > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return time.Duration(v) * unit, nil
}

func setTimeout(dst **time.Duration, v int64, unit time.Duration) error {
	d, err := duration(v, unit)
	if err != nil {
		return err
	}
	if d == 0 {
		*dst = nil
		return nil
	}
	*dst = &d
	return nil
}
