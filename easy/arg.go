package easy

import "unicode/utf8"

// Kind names the payload shape an option expects.
type Kind uint8

const (
	KindLong Kind = iota + 1
	KindOffT
	KindString
	KindBytes
	KindFunc
	KindData
	KindBuffer
	KindList
	KindMime
)

func (k Kind) String() string {
	switch k {
	case KindLong:
		return "long"
	case KindOffT:
		return "off_t"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFunc:
		return "function"
	case KindData:
		return "data"
	case KindBuffer:
		return "buffer"
	case KindList:
		return "slist"
	case KindMime:
		return "mime"
	default:
		return "invalid"
	}
}

// Arg is the value passed to Setopt. It carries exactly one payload of
// the shape named by its Kind. The zero Arg has no kind and is rejected
// by every option.
type Arg struct {
	kind Kind
	null bool
	num  int64
	str  string
	b    []byte
	fn   any
	data any
	list *StringList
	mime *Mime
}

// Long wraps an integer for LONG options. Boolean options treat only 1 as true.
func Long(v int64) Arg {
	return Arg{kind: KindLong, num: v}
}

// OffT wraps a 64-bit size for OFF_T options.
func OffT(v int64) Arg {
	return Arg{kind: KindOffT, num: v}
}

// String wraps text for string options. s is not validated here; options
// reject invalid UTF-8 when applied.
func String(s string) Arg {
	return Arg{kind: KindString, str: s}
}

// Bytes wraps a byte payload. A nil slice is the null payload.
func Bytes(b []byte) Arg {
	return Arg{kind: KindBytes, b: b, null: b == nil}
}

// Func wraps a callback. Write and header options accept a [WriteFunc],
// the progress option accepts a [ProgressFunc]. A nil f is the null callback.
func Func(f any) Arg {
	a := Arg{kind: KindFunc, fn: f}
	switch fn := f.(type) {
	case nil:
		a.null = true
	case WriteFunc:
		a.null = fn == nil
	case ProgressFunc:
		a.null = fn == nil
	}
	return a
}

// Data wraps an opaque value handed back to callbacks untouched.
func Data(v any) Arg {
	return Arg{kind: KindData, data: v, null: v == nil}
}

// Buffer wraps caller-owned error buffer memory. A nil slice unregisters.
func Buffer(b []byte) Arg {
	return Arg{kind: KindBuffer, b: b, null: b == nil}
}

// List wraps a string list. A nil list clears the option.
func List(l *StringList) Arg {
	return Arg{kind: KindList, list: l, null: l == nil}
}

// MimeArg wraps a mime builder. A nil m clears the option.
func MimeArg(m *Mime) Arg {
	return Arg{kind: KindMime, mime: m, null: m == nil}
}

// Null is the null pointer of kind k.
func Null(k Kind) Arg {
	return Arg{kind: k, null: true}
}

// Kind reports the payload shape of a.
func (a Arg) Kind() Kind { return a.kind }

// IsNull reports whether a is a null pointer.
func (a Arg) IsNull() bool { return a.null }

// text returns the string payload, or ErrInvalidUTF8.
func (a Arg) text() (string, error) {
	if !utf8.ValidString(a.str) {
		return "", ErrInvalidUTF8
	}
	return a.str, nil
}
