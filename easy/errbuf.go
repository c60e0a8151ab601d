package easy

import "github.com/adamwoolhether/easycurl/internal/handle"

// ErrorBuffer writes human-readable error text into caller-owned memory.
// Nothing is written until a buffer is registered.
type ErrorBuffer struct {
	buf []byte
}

// SetBuffer registers b as the target, replacing any previous one.
// A nil b unregisters. It may be called at any time, including mid-transfer.
func (e *ErrorBuffer) SetBuffer(b []byte) {
	e.buf = b
}

// SetError writes msg followed by a NUL and returns code unchanged.
// At most min(len(buffer), ErrorSize)-1 bytes of msg are written; longer
// messages are cut byte-wise, which can split a multi-byte character.
func (e *ErrorBuffer) SetError(code Code, msg string) Code {
	if len(e.buf) == 0 {
		return code
	}

	limit := min(len(e.buf), ErrorSize) - 1
	n := copy(e.buf[:limit], msg)
	e.buf[n] = 0

	return code
}

// sinks holds every live handle's buffer. Dependents reach a buffer only
// through its key, so a destroyed handle's buffer becomes unreachable.
var sinks handle.Table[*ErrorBuffer]

// ErrorSink is the owning side of a shared ErrorBuffer.
type ErrorSink struct {
	buf *ErrorBuffer
	key handle.Token
}

func newErrorSink() *ErrorSink {
	buf := &ErrorBuffer{}
	return &ErrorSink{buf: buf, key: sinks.Insert(buf)}
}

// Ref returns a non-owning reference to the sink.
func (s *ErrorSink) Ref() SinkRef {
	return SinkRef{key: s.key}
}

func (s *ErrorSink) close() {
	sinks.Remove(s.key)
	s.buf.SetBuffer(nil)
}

// SinkRef is a weak reference to a handle's error buffer.
// The zero SinkRef refers to nothing.
type SinkRef struct {
	key handle.Token
}

// SetError writes through to the referenced buffer when its handle is
// still alive, and is a no-op otherwise. It always returns code.
func (r SinkRef) SetError(code Code, msg string) Code {
	buf, ok := sinks.Get(r.key)
	if !ok {
		return code
	}
	return buf.SetError(code, msg)
}

// Alive reports whether the owning handle still exists.
func (r SinkRef) Alive() bool {
	_, ok := sinks.Get(r.key)
	return ok
}
