package easy

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Mime is a multipart body under construction. Parts are only ever appended;
// Free releases all of them at once.
type Mime struct {
	parts []*MimePart
	sink  SinkRef
	freed bool
}

// MimePart is one named, typed, data-bearing segment of a Mime.
// Parts hold a weak reference to the creating handle's error buffer.
type MimePart struct {
	name     *string
	mimeType *string
	data     []byte
	sink     SinkRef
	owner    *Mime
}

// NewMime creates a builder whose parts report errors into h's error
// buffer. h may be nil or destroyed, in which case errors are not reported.
func NewMime(h *Handle) *Mime {
	return &Mime{sink: h.ErrorRef()}
}

// AddPart appends an empty part. It returns nil once m has been freed.
func (m *Mime) AddPart() *MimePart {
	if m == nil || m.freed {
		return nil
	}

	p := &MimePart{sink: m.sink, owner: m}
	m.parts = append(m.parts, p)

	return p
}

// Parts returns the parts in insertion order.
func (m *Mime) Parts() []*MimePart {
	if m == nil || m.freed {
		return nil
	}
	return append([]*MimePart(nil), m.parts...)
}

// Free releases every part. Later calls on m or its parts fail.
func (m *Mime) Free() {
	if m == nil || m.freed {
		return
	}
	for _, p := range m.parts {
		p.owner = nil
		p.data = nil
	}
	m.parts = nil
	m.freed = true
}

// SetData copies data into the part. A nil data clears it.
func (p *MimePart) SetData(data []byte) Code {
	if !p.live() {
		return BadFunctionArgument
	}
	if data == nil {
		p.data = nil
		return OK
	}
	p.data = bytes.Clone(data)
	return OK
}

// SetName sets the form field name. A nil name clears it.
func (p *MimePart) SetName(name []byte) Code {
	if !p.live() {
		return BadFunctionArgument
	}
	s, code := p.text("name", name)
	if code != OK {
		return code
	}
	p.name = s
	return OK
}

// SetType sets the declared content type. A nil mimeType clears it.
func (p *MimePart) SetType(mimeType []byte) Code {
	if !p.live() {
		return BadFunctionArgument
	}
	s, code := p.text("type", mimeType)
	if code != OK {
		return code
	}
	p.mimeType = s
	return OK
}

// Name returns the field name, or nil.
func (p *MimePart) Name() *string { return p.name }

// Type returns the declared content type, or nil.
func (p *MimePart) Type() *string { return p.mimeType }

// Data returns the payload, or nil.
func (p *MimePart) Data() []byte { return p.data }

// ErrorRef returns the part's reference to its handle's error buffer.
func (p *MimePart) ErrorRef() SinkRef { return p.sink }

func (p *MimePart) live() bool {
	return p != nil && p.owner != nil && !p.owner.freed
}

func (p *MimePart) text(field string, b []byte) (*string, Code) {
	if b == nil {
		return nil, OK
	}
	if !utf8.Valid(b) {
		return nil, p.sink.SetError(BadFunctionArgument, fmt.Sprintf("mime part %s: %v", field, ErrInvalidUTF8))
	}
	s := string(b)
	return &s, OK
}

// boundary returns a fresh multipart boundary.
func boundary() string {
	id := uuid.New()
	return "------------------------" + hex.EncodeToString(id[:])
}

// encode renders m as a multipart/form-data body and returns it with its
// Content-Type. Parts without a declared type get one sniffed from their data.
func (m *Mime) encode() ([]byte, string, error) {
	if m.freed {
		return nil, "", fmt.Errorf("encoding mime: %w", ErrDestroyed)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary()); err != nil {
		return nil, "", fmt.Errorf("setting boundary: %w", err)
	}

	for _, p := range m.parts {
		hdr := textproto.MIMEHeader{}

		disposition := "form-data"
		if p.name != nil {
			disposition = mime.FormatMediaType("form-data", map[string]string{"name": *p.name})
		}
		hdr.Set("Content-Disposition", disposition)

		switch {
		case p.mimeType != nil:
			hdr.Set("Content-Type", *p.mimeType)
		case len(p.data) > 0:
			hdr.Set("Content-Type", mimetype.Detect(p.data).String())
		}

		pw, err := w.CreatePart(hdr)
		if err != nil {
			return nil, "", fmt.Errorf("creating part: %w", err)
		}
		if _, err := pw.Write(p.data); err != nil {
			return nil, "", fmt.Errorf("writing part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
