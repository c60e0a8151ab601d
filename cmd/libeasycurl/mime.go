package main

/*
#include <string.h>
#include "easycurl.h"
*/
import "C"

import (
	"unsafe"

	"github.com/adamwoolhether/easycurl/easy"
	"github.com/adamwoolhether/easycurl/internal/handle"
)

// zeroTerminated is CURL_ZERO_TERMINATED: scan data for its NUL.
const zeroTerminated = ^C.size_t(0)

// mimeBuilder tracks the part tokens handed out for a mime, so that
// freeing the mime invalidates all of them.
type mimeBuilder struct {
	m     *easy.Mime
	parts []handle.Token
}

//export easycurl_mime_init
func easycurl_mime_init(tok C.uintptr_t) C.uintptr_t {
	var h *easy.Handle
	if eh, ok := lookupHandle(tok); ok {
		h = eh.h
	}

	return cToken(mimes.Insert(&mimeBuilder{m: easy.NewMime(h)}))
}

//export easycurl_mime_addpart
func easycurl_mime_addpart(tok C.uintptr_t) C.uintptr_t {
	mb, ok := mimes.Get(token(tok))
	if !ok {
		return 0
	}

	p := mb.m.AddPart()
	if p == nil {
		return 0
	}

	pt := parts.Insert(p)
	mb.parts = append(mb.parts, pt)

	return cToken(pt)
}

//export easycurl_mime_free
func easycurl_mime_free(tok C.uintptr_t) {
	mb, ok := mimes.Remove(token(tok))
	if !ok {
		return
	}

	for _, pt := range mb.parts {
		parts.Remove(pt)
	}
	mb.m.Free()
}

//export easycurl_mime_data
func easycurl_mime_data(tok C.uintptr_t, data *C.char, size C.size_t) C.int {
	p, ok := parts.Get(token(tok))
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	if data == nil {
		return C.int(p.SetData(nil))
	}

	if size == zeroTerminated {
		size = C.strlen(data)
	}

	return C.int(p.SetData(unsafe.Slice((*byte)(unsafe.Pointer(data)), int(size))))
}

//export easycurl_mime_name
func easycurl_mime_name(tok C.uintptr_t, name *C.char) C.int {
	p, ok := parts.Get(token(tok))
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	return C.int(p.SetName(cBytes(name)))
}

//export easycurl_mime_type
func easycurl_mime_type(tok C.uintptr_t, mimeType *C.char) C.int {
	p, ok := parts.Get(token(tok))
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	return C.int(p.SetType(cBytes(mimeType)))
}

// cBytes copies a NUL-terminated string without validating its encoding.
// A nil s yields nil.
func cBytes(s *C.char) []byte {
	if s == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(s), C.int(C.strlen(s)))
}
