// Command libeasycurl builds the easy package into a C shared library
// exposing the libcurl easy interface:
//
//	go build -buildmode=c-shared -o libeasycurl.so ./cmd/libeasycurl
//
// Every handle, mime, part and list crosses the boundary as a table token
// cast to a pointer type, so C never holds a Go pointer. Tokens are 64 bits
// wide; 32-bit targets are not supported.
package main

/*
#include "easycurl.h"
*/
import "C"

import (
	"log/slog"
	"os"
	"sync"

	"github.com/adamwoolhether/easycurl/easy"
	"github.com/adamwoolhether/easycurl/internal/config"
	"github.com/adamwoolhether/easycurl/internal/handle"
)

// build is set by the linker.
var build = "develop"

func main() {}

type environment struct {
	cfg config.Config
	log *slog.Logger
}

// env loads the library configuration once, on first use.
var env = sync.OnceValue(func() environment {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
		log := cfg.Logger(os.Stderr)
		log.Warn("invalid environment configuration, using defaults", "error", err)
		return environment{cfg: cfg, log: log}
	}

	return environment{cfg: cfg, log: cfg.Logger(os.Stderr)}
})

var (
	handles handle.Table[*easyHandle]
	mimes   handle.Table[*mimeBuilder]
	parts   handle.Table[*easy.MimePart]
	lists   handle.Table[*easy.StringList]
)

// handleOptions configures a boundary handle from the library environment.
func handleOptions(e environment) []easy.Option {
	return []easy.Option{
		easy.WithLogger(e.log),
		easy.WithProgressInterval(e.cfg.ProgressInterval),
		easy.WithDebug(e.cfg.Debug),
		easy.WithDefaultWrite(defaultWrite),
	}
}

func token(v C.uintptr_t) handle.Token {
	return handle.Token(v)
}

func cToken(t handle.Token) C.uintptr_t {
	return C.uintptr_t(t)
}
