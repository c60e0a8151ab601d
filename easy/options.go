package easy

import (
	"net/http"
	"time"
)

const (
	// ErrorSize is the capacity of a caller error buffer, CURL_ERROR_SIZE.
	ErrorSize = 256
	// MaxWriteSize caps the bytes handed to a write callback per call.
	MaxWriteSize = 16384
	// MaxRedirects is the hop limit when FOLLOWLOCATION is enabled.
	MaxRedirects = 30
	// DefaultConnectTimeout applies until CONNECTTIMEOUT says otherwise.
	DefaultConnectTimeout = 300 * time.Second
)

// Opt is an option identifier. Values match libcurl's CURLoption; the
// thousands base encodes the argument type.
type Opt int

const (
	optTypeLong     = 0
	optTypeObject   = 10000
	optTypeFunction = 20000
	optTypeOffT     = 30000
)

const (
	OptTimeout           Opt = optTypeLong + 13
	OptNoProgress        Opt = optTypeLong + 43
	OptFollowLocation    Opt = optTypeLong + 52
	OptPostFieldSize     Opt = optTypeLong + 60
	OptFileTime          Opt = optTypeLong + 69
	OptConnectTimeout    Opt = optTypeLong + 78
	OptTimeoutMS         Opt = optTypeLong + 155
	OptConnectTimeoutMS  Opt = optTypeLong + 156
	OptWriteData         Opt = optTypeObject + 1
	OptURL               Opt = optTypeObject + 2
	OptErrorBuffer       Opt = optTypeObject + 10
	OptPostFields        Opt = optTypeObject + 15
	OptUserAgent         Opt = optTypeObject + 18
	OptHTTPHeader        Opt = optTypeObject + 23
	OptHeaderData        Opt = optTypeObject + 29
	OptCustomRequest     Opt = optTypeObject + 36
	OptProgressData      Opt = optTypeObject + 57
	OptMimePost          Opt = optTypeObject + 269
	OptWriteFunction     Opt = optTypeFunction + 11
	OptProgressFunction  Opt = optTypeFunction + 56
	OptHeaderFunction    Opt = optTypeFunction + 79
	OptMaxRecvSpeedLarge Opt = optTypeOffT + 146
)

// WriteFunc receives response body chunks, or header lines. It returns the
// number of bytes it consumed; anything other than len(data) fails the
// transfer. data is only valid for the duration of the call.
type WriteFunc func(data []byte, userdata any) int

// ProgressFunc receives download progress after every body chunk.
// The upload counters are always zero. The return value is ignored.
type ProgressFunc func(dltotal, dlnow, ultotal, ulnow int64, userdata any) int

// Options is the configuration record a handle transfers with.
type Options struct {
	URL            *string
	Method         string
	CustomRequest  *string
	FollowLocation bool
	PostFields     []byte
	// PostFieldSize limits PostFields when >= 0. -1 means the whole payload.
	PostFieldSize  int64
	ConnectTimeout *time.Duration
	Timeout        *time.Duration
	FileTime       bool
	NoProgress     bool
	UserAgent      *string
	HTTPHeader     *StringList
	MaxRecvSpeed   int64
	MimePost       *Mime

	WriteFunction WriteFunc
	WriteData     any
	// HeaderFunctionSet records an explicit HEADERFUNCTION, including a nil one.
	HeaderFunctionSet bool
	HeaderFunction    WriteFunc
	HeaderData        any
	ProgressFunction  ProgressFunc
	ProgressData      any

	ErrorBuffer []byte
}

func defaultOptions() Options {
	connect := DefaultConnectTimeout

	return Options{
		Method:         http.MethodGet,
		PostFieldSize:  -1,
		ConnectTimeout: &connect,
		NoProgress:     true,
	}
}

// postBody returns the POST payload trimmed to PostFieldSize.
func (o *Options) postBody() []byte {
	if o.PostFields == nil {
		return nil
	}
	if o.PostFieldSize >= 0 && o.PostFieldSize < int64(len(o.PostFields)) {
		return o.PostFields[:o.PostFieldSize]
	}
	return o.PostFields
}

// method returns the request method, honouring CUSTOMREQUEST.
func (o *Options) method() string {
	if o.CustomRequest != nil {
		return *o.CustomRequest
	}
	return o.Method
}
