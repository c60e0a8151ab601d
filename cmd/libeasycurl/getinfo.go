package main

/*
#include <stdlib.h>
#include "easycurl.h"
*/
import "C"

import (
	"github.com/adamwoolhether/easycurl/easy"
)

func getInfo(tok C.uintptr_t, id C.int, out bool) (*easyHandle, easy.InfoValue, easy.Code) {
	eh, ok := lookupHandle(tok)
	if !ok || !out {
		return nil, easy.InfoValue{}, easy.BadFunctionArgument
	}

	v, code := eh.h.GetInfo(easy.Info(id))
	return eh, v, code
}

//export easycurl_getinfo_string
func easycurl_getinfo_string(tok C.uintptr_t, id C.int, out **C.char) C.int {
	eh, v, code := getInfo(tok, id, out != nil)
	if code != easy.OK {
		return C.int(code)
	}

	eh.releaseInfo()
	if s := v.Str(); s != nil {
		eh.info = C.CString(*s)
	}
	*out = eh.info

	return C.int(easy.OK)
}

//export easycurl_getinfo_long
func easycurl_getinfo_long(tok C.uintptr_t, id C.int, out *C.long) C.int {
	_, v, code := getInfo(tok, id, out != nil)
	if code != easy.OK {
		return C.int(code)
	}

	*out = C.long(v.Long())
	return C.int(easy.OK)
}

//export easycurl_getinfo_double
func easycurl_getinfo_double(tok C.uintptr_t, id C.int, out *C.double) C.int {
	_, v, code := getInfo(tok, id, out != nil)
	if code != easy.OK {
		return C.int(code)
	}

	*out = C.double(v.Double())
	return C.int(easy.OK)
}

//export easycurl_getinfo_off_t
func easycurl_getinfo_off_t(tok C.uintptr_t, id C.int, out *C.int64_t) C.int {
	_, v, code := getInfo(tok, id, out != nil)
	if code != easy.OK {
		return C.int(code)
	}

	*out = C.int64_t(v.Long())
	return C.int(easy.OK)
}

// easycurl_getinfo_unknown handles ids outside every known type mask.
//
//export easycurl_getinfo_unknown
func easycurl_getinfo_unknown(tok C.uintptr_t, id C.int) C.int {
	_, _, code := getInfo(tok, id, true)
	return C.int(code)
}
