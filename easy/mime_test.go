package easy_test

import (
	"testing"

	"github.com/adamwoolhether/easycurl/easy"
)

func TestMime_Parts(t *testing.T) {
	h, _ := newHandle(t)
	m := easy.NewMime(h)

	first := m.AddPart()
	second := m.AddPart()

	parts := m.Parts()
	if len(parts) != 2 || parts[0] != first || parts[1] != second {
		t.Fatalf("expected parts in insertion order, got %v", parts)
	}

	data := []byte("payload")
	if code := first.SetData(data); code != easy.OK {
		t.Fatalf("set data: %v", code)
	}
	data[0] = 'X'
	if got := string(first.Data()); got != "payload" {
		t.Errorf("expected copied data, got %q", got)
	}

	if code := first.SetName([]byte("field")); code != easy.OK {
		t.Fatalf("set name: %v", code)
	}
	if code := first.SetType([]byte("text/plain")); code != easy.OK {
		t.Fatalf("set type: %v", code)
	}
	if *first.Name() != "field" || *first.Type() != "text/plain" {
		t.Errorf("unexpected name/type %q/%q", *first.Name(), *first.Type())
	}

	// nil clears.
	first.SetName(nil)
	first.SetType(nil)
	first.SetData(nil)
	if first.Name() != nil || first.Type() != nil || first.Data() != nil {
		t.Error("expected nil to clear every field")
	}
}

func TestMime_InvalidUTF8KeepsValue(t *testing.T) {
	h, _ := newHandle(t)
	buf := withErrorBuffer(t, h)

	p := easy.NewMime(h).AddPart()
	p.SetType([]byte("text/plain"))

	if code := p.SetType([]byte{0xc3, 0x28}); code != easy.BadFunctionArgument {
		t.Fatalf("expected %v, got %v", easy.BadFunctionArgument, code)
	}
	if *p.Type() != "text/plain" {
		t.Errorf("expected previous type kept, got %q", *p.Type())
	}
	if got := cstr(buf); got != "mime part type: invalid utf-8" {
		t.Errorf("unexpected buffer text %q", got)
	}
}

func TestMime_Free(t *testing.T) {
	h, _ := newHandle(t)
	m := easy.NewMime(h)
	p := m.AddPart()

	m.Free()
	m.Free()

	if m.AddPart() != nil {
		t.Error("expected no parts from a freed mime")
	}
	if m.Parts() != nil {
		t.Error("expected freed mime to have no parts")
	}
	if code := p.SetData([]byte("x")); code != easy.BadFunctionArgument {
		t.Errorf("expected %v on freed part, got %v", easy.BadFunctionArgument, code)
	}
}

func TestMime_WithoutHandle(t *testing.T) {
	m := easy.NewMime(nil)
	p := m.AddPart()

	if p.ErrorRef().Alive() {
		t.Error("expected parts without a handle to report nowhere")
	}
	if code := p.SetName([]byte{0xff}); code != easy.BadFunctionArgument {
		t.Errorf("expected %v, got %v", easy.BadFunctionArgument, code)
	}
}

func TestStringList(t *testing.T) {
	l := easy.NewStringList()

	if err := l.Append("Accept: */*"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Append("Bad: \xff"); err == nil {
		t.Error("expected invalid utf-8 rejected")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}

	items := l.Items()
	items[0] = "mutated"
	if l.Items()[0] != "Accept: */*" {
		t.Error("Items must return a copy")
	}

	var nilList *easy.StringList
	if nilList.Len() != 0 || nilList.Items() != nil {
		t.Error("nil list must be empty")
	}
}

func TestStrError(t *testing.T) {
	tests := map[easy.Code]string{
		easy.OK:                  "No error",
		easy.HTTPReturnedError:   "HTTP operation failed",
		easy.BadFunctionArgument: "Bad function argument",
		easy.UnknownOption:       "Unknown option",
		easy.Code(9999):          "Unknown error code",
	}

	for code, want := range tests {
		if got := easy.StrError(code); got != want {
			t.Errorf("%d: expected %q, got %q", int(code), want, got)
		}
	}

	if got := easy.WriteError.String(); got != "CURLE_WRITE_ERROR" {
		t.Errorf("expected CURLE_WRITE_ERROR, got %s", got)
	}
}
