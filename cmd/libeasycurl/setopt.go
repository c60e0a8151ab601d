package main

/*
#include <string.h>
#include "easycurl.h"
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/adamwoolhether/easycurl/easy"
	"github.com/adamwoolhether/easycurl/internal/handle"
)

//export easycurl_setopt_long
func easycurl_setopt_long(tok C.uintptr_t, opt C.int, v C.long) C.int {
	eh, ok := lookupHandle(tok)
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	return C.int(eh.h.Setopt(easy.Opt(opt), easy.Long(int64(v))))
}

//export easycurl_setopt_off_t
func easycurl_setopt_off_t(tok C.uintptr_t, opt C.int, v C.int64_t) C.int {
	eh, ok := lookupHandle(tok)
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	return C.int(eh.h.Setopt(easy.Opt(opt), easy.OffT(int64(v))))
}

//export easycurl_setopt_ptr
func easycurl_setopt_ptr(tok C.uintptr_t, opt C.int, p unsafe.Pointer) C.int {
	eh, ok := lookupHandle(tok)
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	o := easy.Opt(opt)

	arg, err := decodePtr(eh.h, o, p)
	if err != nil {
		return C.int(eh.h.ErrorRef().SetError(easy.BadFunctionArgument, fmt.Sprintf("%s: %v", easy.OptName(o), err)))
	}

	return C.int(eh.h.Setopt(o, arg))
}

// decodePtr turns an object pointer into the argument kind opt expects.
// Unknown options decode to a null pointer so Setopt can reject them.
func decodePtr(h *easy.Handle, opt easy.Opt, p unsafe.Pointer) (easy.Arg, error) {
	kind, ok := easy.KindOf(opt)
	if !ok {
		return easy.Null(easy.KindData), nil
	}

	if p == nil {
		return easy.Null(kind), nil
	}

	switch kind {
	case easy.KindString:
		return easy.String(C.GoString((*C.char)(p))), nil

	case easy.KindBytes:
		n := h.Options().PostFieldSize
		if n < 0 {
			n = int64(C.strlen((*C.char)(p)))
		}
		if n > math.MaxInt32 {
			return easy.Arg{}, fmt.Errorf("%w: %d bytes", easy.ErrOutOfRange, n)
		}
		return easy.Bytes(C.GoBytes(p, C.int(n))), nil

	case easy.KindBuffer:
		return easy.Buffer(unsafe.Slice((*byte)(p), easy.ErrorSize)), nil

	case easy.KindData:
		return easy.Data(p), nil

	case easy.KindList:
		l, ok := lists.Get(handle.Token(uintptr(p)))
		if !ok {
			return easy.Arg{}, fmt.Errorf("slist: %w", handle.ErrInvalidToken)
		}
		return easy.List(l), nil

	case easy.KindMime:
		m, ok := mimes.Get(handle.Token(uintptr(p)))
		if !ok {
			return easy.Arg{}, fmt.Errorf("mime: %w", handle.ErrInvalidToken)
		}
		return easy.MimeArg(m.m), nil
	}

	// A long, off_t or function option reached through the object base.
	return easy.Null(kind), nil
}

//export easycurl_setopt_func
func easycurl_setopt_func(tok C.uintptr_t, opt C.int, fn unsafe.Pointer) C.int {
	eh, ok := lookupHandle(tok)
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	o := easy.Opt(opt)
	if fn == nil {
		return C.int(eh.h.Setopt(o, easy.Func(nil)))
	}

	switch o {
	case easy.OptWriteFunction, easy.OptHeaderFunction:
		return C.int(eh.h.Setopt(o, easy.Func(cWriteFunc(fn))))
	case easy.OptProgressFunction:
		return C.int(eh.h.Setopt(o, easy.Func(cProgressFunc(fn))))
	}

	return C.int(eh.h.Setopt(o, easy.Func(nil)))
}
