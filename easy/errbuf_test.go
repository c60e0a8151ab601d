package easy_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/adamwoolhether/easycurl/easy"
)

func TestErrorBuffer_Truncates(t *testing.T) {
	const guard = 0xAA

	buf := bytes.Repeat([]byte{guard}, easy.ErrorSize+16)

	var eb easy.ErrorBuffer
	eb.SetBuffer(buf)

	if got := eb.SetError(easy.WriteError, strings.Repeat("x", 4*easy.ErrorSize)); got != easy.WriteError {
		t.Errorf("expected code %v returned unchanged, got %v", easy.WriteError, got)
	}

	want := strings.Repeat("x", easy.ErrorSize-1)
	if got := string(buf[:easy.ErrorSize-1]); got != want {
		t.Errorf("expected %d payload bytes, got %q", easy.ErrorSize-1, got)
	}
	if buf[easy.ErrorSize-1] != 0 {
		t.Errorf("expected terminator at %d, got %#x", easy.ErrorSize-1, buf[easy.ErrorSize-1])
	}
	for i, b := range buf[easy.ErrorSize:] {
		if b != guard {
			t.Fatalf("byte %d past capacity was overwritten", easy.ErrorSize+i)
		}
	}
}

func TestErrorBuffer_ShortMessage(t *testing.T) {
	buf := bytes.Repeat([]byte{'z'}, easy.ErrorSize)

	var eb easy.ErrorBuffer
	eb.SetBuffer(buf)
	eb.SetError(easy.URLMalformat, "bad url")

	if got := cstr(buf); got != "bad url" {
		t.Errorf("expected %q, got %q", "bad url", got)
	}
}

func TestErrorBuffer_NoBuffer(t *testing.T) {
	var eb easy.ErrorBuffer

	if got := eb.SetError(easy.HTTPReturnedError, "ignored"); got != easy.HTTPReturnedError {
		t.Errorf("expected code returned unchanged, got %v", got)
	}
}

func TestErrorBuffer_SmallerThanCapacity(t *testing.T) {
	buf := make([]byte, 4)

	var eb easy.ErrorBuffer
	eb.SetBuffer(buf)
	eb.SetError(easy.WriteError, "abcdef")

	if got := string(buf); got != "abc\x00" {
		t.Errorf("expected %q, got %q", "abc\x00", got)
	}
}

func TestErrorBuffer_ByteWiseTruncation(t *testing.T) {
	buf := make([]byte, easy.ErrorSize)

	var eb easy.ErrorBuffer
	eb.SetBuffer(buf)

	// 2-byte runes: 255 payload bytes end half way through a rune.
	eb.SetError(easy.WriteError, strings.Repeat("é", easy.ErrorSize))

	got := cstr(buf)
	if len(got) != easy.ErrorSize-1 {
		t.Errorf("expected %d bytes, got %d", easy.ErrorSize-1, len(got))
	}
	if got[len(got)-1] != "é"[0] {
		t.Errorf("expected a dangling lead byte, got %#x", got[len(got)-1])
	}
}

func TestErrorBuffer_Replace(t *testing.T) {
	first := make([]byte, easy.ErrorSize)
	second := make([]byte, easy.ErrorSize)

	var eb easy.ErrorBuffer
	eb.SetBuffer(first)
	eb.SetBuffer(second)
	eb.SetError(easy.WriteError, "to second")

	if got := cstr(first); got != "" {
		t.Errorf("replaced buffer should stay untouched, got %q", got)
	}
	if got := cstr(second); got != "to second" {
		t.Errorf("expected %q, got %q", "to second", got)
	}
}

func TestSinkRef_SharedWithMimeParts(t *testing.T) {
	h, _ := newHandle(t)
	buf := withErrorBuffer(t, h)

	part := easy.NewMime(h).AddPart()
	if code := part.SetName([]byte{0xff, 0xfe}); code != easy.BadFunctionArgument {
		t.Fatalf("expected %v, got %v", easy.BadFunctionArgument, code)
	}

	if got := cstr(buf); !strings.Contains(got, "mime part name") {
		t.Errorf("expected part error in handle buffer, got %q", got)
	}
}

func TestSinkRef_AfterCleanup(t *testing.T) {
	h, _ := newHandle(t)
	buf := withErrorBuffer(t, h)

	part := easy.NewMime(h).AddPart()
	ref := part.ErrorRef()
	if !ref.Alive() {
		t.Fatal("expected live reference before cleanup")
	}

	h.Cleanup()

	if ref.Alive() {
		t.Error("expected reference to die with its handle")
	}
	if got := ref.SetError(easy.WriteError, "after cleanup"); got != easy.WriteError {
		t.Errorf("expected code returned unchanged, got %v", got)
	}
	if code := part.SetType([]byte{0xff}); code != easy.BadFunctionArgument {
		t.Errorf("expected %v, got %v", easy.BadFunctionArgument, code)
	}
	if got := cstr(buf); got != "" {
		t.Errorf("expected no write after cleanup, got %q", got)
	}
}

func TestSinkRef_Zero(t *testing.T) {
	var ref easy.SinkRef

	if ref.Alive() {
		t.Error("zero reference must not be alive")
	}
	if got := ref.SetError(easy.OutOfMemory, "nowhere"); got != easy.OutOfMemory {
		t.Errorf("expected code returned unchanged, got %v", got)
	}
}
