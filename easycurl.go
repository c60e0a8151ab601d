// Package easycurl exposes the easy handle constructor.
package easycurl

import (
	"github.com/adamwoolhether/easycurl/easy"
)

// NewHandle instantiates a new *easy.Handle with the provided options.
// If not specified, a fresh net/http transport is built for every perform.
func NewHandle(opts ...easy.Option) (*easy.Handle, error) {
	return easy.Init(opts...)
}
