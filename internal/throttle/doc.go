// Package throttle paces reads from a response body using a token-bucket
// limiter from [golang.org/x/time/rate].
//
// # Usage
//
// Wrap a body with [NewReader]:
//
//	r, err := throttle.NewReader(ctx, resp.Body,
//		64<<10, // bytes per second
//		func() *slog.Logger { return slog.Default() },
//	)
//
// Each Read returns at most one burst worth of bytes and blocks until the
// bucket holds enough tokens to cover what was read.
package throttle
