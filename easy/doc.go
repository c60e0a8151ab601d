// Package easy implements a libcurl-compatible easy handle for HTTP
// transfers built on [net/http].
//
// # Configuring a Handle
//
// Create a [Handle] with [Init], then set options by identifier. Each
// option expects one argument shape, wrapped in an [Arg]:
//
//	h, err := easy.Init(easy.WithLogger(logger))
//	h.Setopt(easy.OptURL, easy.String("https://example.com/"))
//	h.Setopt(easy.OptFollowLocation, easy.Long(1))
//	h.Setopt(easy.OptWriteFunction, easy.Func(easy.WriteFunc(
//		func(data []byte, _ any) int { return len(data) },
//	)))
//
// Boolean options are true only for the value 1. A failed Setopt leaves
// the option untouched and returns a [Code].
//
// # Performing
//
// [Handle.Perform] blocks for the whole exchange and invokes the header,
// write and progress callbacks synchronously on the calling goroutine.
// Results are read back with [Handle.GetInfo]:
//
//	if code := h.Perform(); code != easy.OK {
//		return fmt.Errorf("transfer: %s", easy.StrError(code))
//	}
//	v, _ := h.GetInfo(easy.InfoResponseCode)
//
// # Error Buffers
//
// Register caller memory with OptErrorBuffer to receive a NUL-terminated
// message for every failure. Mime parts created through [NewMime] share
// the handle's buffer through a weak [SinkRef]; once the handle is cleaned
// up, their writes become no-ops.
//
// # Lifecycle
//
// [Handle.Reset] restores defaults, [Handle.Cleanup] destroys the handle.
// Any call on a destroyed handle reports BadFunctionArgument.
package easy
