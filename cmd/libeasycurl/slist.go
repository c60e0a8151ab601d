package main

/*
#include "easycurl.h"
*/
import "C"

import (
	"github.com/adamwoolhether/easycurl/easy"
)

// easycurl_slist_append appends value to the list, creating one when tok
// is zero. It returns zero, leaving the list as it was, for a nil or
// invalid UTF-8 value and for an unknown list.
//
//export easycurl_slist_append
func easycurl_slist_append(tok C.uintptr_t, value *C.char) C.uintptr_t {
	if value == nil {
		return 0
	}

	l := easy.NewStringList()
	if tok != 0 {
		var ok bool
		if l, ok = lists.Get(token(tok)); !ok {
			return 0
		}
	}

	if err := l.Append(C.GoString(value)); err != nil {
		env().log.Debug("slist append rejected", "error", err)
		return 0
	}

	if tok != 0 {
		return tok
	}
	return cToken(lists.Insert(l))
}

//export easycurl_slist_free_all
func easycurl_slist_free_all(tok C.uintptr_t) {
	lists.Remove(token(tok))
}
