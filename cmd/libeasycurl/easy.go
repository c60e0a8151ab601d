package main

/*
#include <stdlib.h>
#include "easycurl.h"
*/
import "C"

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/adamwoolhether/easycurl/easy"
)

// easyHandle pairs a handle with the C memory handed out on its behalf.
type easyHandle struct {
	h *easy.Handle

	// info holds the last string returned by getinfo. It stays valid until
	// the next getinfo, perform, reset or cleanup on the handle.
	info *C.char
}

func (eh *easyHandle) releaseInfo() {
	if eh.info != nil {
		C.free(unsafe.Pointer(eh.info))
		eh.info = nil
	}
}

func lookupHandle(tok C.uintptr_t) (*easyHandle, bool) {
	return handles.Get(token(tok))
}

//export easycurl_global_init
func easycurl_global_init(flags C.long) C.int {
	env().log.Debug("global init", "flags", int64(flags))
	return C.int(easy.OK)
}

//export easycurl_global_cleanup
func easycurl_global_cleanup() {
	env().log.Debug("global cleanup")
}

var version = sync.OnceValue(func() *C.char {
	return C.CString(versionString())
})

func versionString() string {
	return fmt.Sprintf("libeasycurl/%s %s", build, runtime.Version())
}

//export easycurl_version
func easycurl_version() *C.char {
	return version()
}

//export easycurl_init
func easycurl_init() C.uintptr_t {
	e := env()

	h, err := easy.Init(handleOptions(e)...)
	if err != nil {
		e.log.Error("failed to init handle", "error", err)
		return 0
	}

	return cToken(handles.Insert(&easyHandle{h: h}))
}

//export easycurl_cleanup
func easycurl_cleanup(tok C.uintptr_t) {
	eh, ok := handles.Remove(token(tok))
	if !ok {
		return
	}

	eh.releaseInfo()
	eh.h.Cleanup()
}

//export easycurl_reset
func easycurl_reset(tok C.uintptr_t) {
	eh, ok := lookupHandle(tok)
	if !ok {
		return
	}

	eh.releaseInfo()
	eh.h.Reset()
}

//export easycurl_duphandle
func easycurl_duphandle(tok C.uintptr_t) C.uintptr_t {
	eh, ok := lookupHandle(tok)
	if !ok {
		return 0
	}

	dup, err := eh.h.DupHandle()
	if err != nil {
		env().log.Error("failed to duplicate handle", "error", err)
		return 0
	}

	return cToken(handles.Insert(&easyHandle{h: dup}))
}

//export easycurl_perform
func easycurl_perform(tok C.uintptr_t) C.int {
	eh, ok := lookupHandle(tok)
	if !ok {
		return C.int(easy.BadFunctionArgument)
	}

	eh.releaseInfo()
	return C.int(eh.h.Perform())
}

var strerrors = struct {
	sync.Mutex
	texts map[string]*C.char
}{texts: make(map[string]*C.char)}

// easycurl_strerror returns static text; the strings are never freed.
//
//export easycurl_strerror
func easycurl_strerror(code C.int) *C.char {
	text := easy.StrError(easy.Code(code))

	strerrors.Lock()
	defer strerrors.Unlock()

	if s, ok := strerrors.texts[text]; ok {
		return s
	}

	s := C.CString(text)
	strerrors.texts[text] = s

	return s
}
