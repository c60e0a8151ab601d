package easy

import (
	"fmt"
	"time"
)

// Info is an info identifier. Values match libcurl's CURLINFO; the high
// nibble encodes the result type.
type Info int

// InfoType is the result shape an Info yields.
type InfoType int

const (
	InfoTypeString InfoType = 0x100000
	InfoTypeLong   InfoType = 0x200000
	InfoTypeDouble InfoType = 0x300000
	InfoTypeOffT   InfoType = 0x600000

	infoTypeMask = 0xf00000
)

const (
	InfoEffectiveURL           = Info(InfoTypeString) + 1
	InfoResponseCode           = Info(InfoTypeLong) + 2
	InfoTotalTime              = Info(InfoTypeDouble) + 3
	InfoSizeDownload           = Info(InfoTypeDouble) + 8
	InfoSizeDownloadT          = Info(InfoTypeOffT) + 8
	InfoFileTime               = Info(InfoTypeLong) + 14
	InfoFileTimeT              = Info(InfoTypeOffT) + 14
	InfoContentLengthDownload  = Info(InfoTypeDouble) + 15
	InfoContentLengthDownloadT = Info(InfoTypeOffT) + 15
	InfoContentType            = Info(InfoTypeString) + 18
	InfoRedirectCount          = Info(InfoTypeLong) + 20
	InfoConditionUnmet         = Info(InfoTypeLong) + 35
	InfoTotalTimeT             = Info(InfoTypeOffT) + 50
)

// Type reports the result shape of i.
func (i Info) Type() InfoType {
	return InfoType(int(i) & infoTypeMask)
}

// ResponseInfo holds the results of the most recent perform.
type ResponseInfo struct {
	EffectiveURL          *string
	ResponseCode          int
	ContentLengthDownload *int64
	SizeDownload          int64
	FileTime              *time.Time
	ContentType           *string
	RedirectCount         int
	TotalTime             time.Duration
}

// InfoValue is a GetInfo result. Exactly one accessor matches its Type.
type InfoValue struct {
	typ    InfoType
	str    *string
	num    int64
	double float64
}

// Type reports which accessor holds the value.
func (v InfoValue) Type() InfoType { return v.typ }

// Str returns the string result; nil means the field is unset.
func (v InfoValue) Str() *string { return v.str }

// Long returns the LONG or OFF_T result.
func (v InfoValue) Long() int64 { return v.num }

// Double returns the DOUBLE result.
func (v InfoValue) Double() float64 { return v.double }

func strInfo(s *string) InfoValue    { return InfoValue{typ: InfoTypeString, str: s} }
func longInfo(n int64) InfoValue     { return InfoValue{typ: InfoTypeLong, num: n} }
func offInfo(n int64) InfoValue      { return InfoValue{typ: InfoTypeOffT, num: n} }
func doubleInfo(f float64) InfoValue { return InfoValue{typ: InfoTypeDouble, double: f} }

// GetInfo reads one result field. Unknown identifiers report
// BadFunctionArgument.
func (h *Handle) GetInfo(id Info) (InfoValue, Code) {
	if !h.live() {
		return InfoValue{}, BadFunctionArgument
	}

	info := &h.info

	switch id {
	case InfoEffectiveURL:
		url := ""
		if info.EffectiveURL != nil {
			url = *info.EffectiveURL
		}
		return strInfo(&url), OK
	case InfoResponseCode:
		return longInfo(int64(info.ResponseCode)), OK
	case InfoTotalTime:
		return doubleInfo(info.TotalTime.Seconds()), OK
	case InfoTotalTimeT:
		return offInfo(info.TotalTime.Microseconds()), OK
	case InfoSizeDownload:
		return doubleInfo(float64(info.SizeDownload)), OK
	case InfoSizeDownloadT:
		return offInfo(info.SizeDownload), OK
	case InfoFileTime:
		return longInfo(info.fileTime()), OK
	case InfoFileTimeT:
		return offInfo(info.fileTime()), OK
	case InfoContentLengthDownload:
		return doubleInfo(float64(info.contentLength())), OK
	case InfoContentLengthDownloadT:
		return offInfo(info.contentLength()), OK
	case InfoContentType:
		return strInfo(info.ContentType), OK
	case InfoRedirectCount:
		return longInfo(int64(info.RedirectCount)), OK
	case InfoConditionUnmet:
		// Time conditions are not implemented, so the condition is never met.
		return longInfo(1), OK
	}

	if h.debug {
		h.log.Warn("unimplemented info", "info", fmt.Sprintf("%#x", int(id)))
	}

	return InfoValue{}, BadFunctionArgument
}

// fileTime returns the Unix time of the remote document, or -1 when unknown.
func (r *ResponseInfo) fileTime() int64 {
	if r.FileTime == nil {
		return -1
	}
	return r.FileTime.Unix()
}

// contentLength returns the declared download size, or -1 when unknown.
func (r *ResponseInfo) contentLength() int64 {
	if r.ContentLengthDownload == nil {
		return -1
	}
	return *r.ContentLengthDownload
}
