package main

/*
#include "easycurl.h"
*/
import "C"

import (
	"unsafe"

	"github.com/adamwoolhether/easycurl/easy"
)

// userPtr recovers the opaque C pointer stored as callback userdata.
func userPtr(userdata any) unsafe.Pointer {
	p, _ := userdata.(unsafe.Pointer)
	return p
}

// cWriteFunc adapts a curl_write_callback.
func cWriteFunc(fn unsafe.Pointer) easy.WriteFunc {
	cb := C.curl_write_callback(fn)

	return func(data []byte, userdata any) int {
		if len(data) == 0 {
			return 0
		}
		return int(C.easycurl_call_write(cb, (*C.char)(unsafe.Pointer(&data[0])), C.size_t(len(data)), userPtr(userdata)))
	}
}

// cProgressFunc adapts a curl_progress_callback.
func cProgressFunc(fn unsafe.Pointer) easy.ProgressFunc {
	cb := C.curl_progress_callback(fn)

	return func(dltotal, dlnow, ultotal, ulnow int64, userdata any) int {
		return int(C.easycurl_call_progress(cb, userPtr(userdata),
			C.double(dltotal), C.double(dlnow), C.double(ultotal), C.double(ulnow)))
	}
}

// defaultWrite writes to the FILE* in WRITEDATA, or stdout without one.
func defaultWrite(data []byte, userdata any) int {
	if len(data) == 0 {
		return 0
	}
	return int(C.easycurl_default_write((*C.char)(unsafe.Pointer(&data[0])), C.size_t(len(data)), userPtr(userdata)))
}
