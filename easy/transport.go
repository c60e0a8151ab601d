package easy

import (
	"fmt"
	"net"
	"net/http"
)

// newClient builds the client for a single perform. It is never reused,
// so connections are not pooled across performs. redirects receives the
// number of redirects followed.
func (h *Handle) newClient(redirects *int) *http.Client {
	var transport http.RoundTripper
	if h.rt != nil {
		transport = h.rt
	} else {
		transport = h.baseTransport()
	}

	if h.opts.UserAgent != nil {
		transport = userAgent{value: *h.opts.UserAgent, base: transport}
	}

	client := &http.Client{Transport: transport}

	if h.opts.Timeout != nil {
		client.Timeout = *h.opts.Timeout
	}

	if h.opts.FollowLocation {
		client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
			if len(via) > MaxRedirects {
				return fmt.Errorf("maximum (%d) redirects followed", MaxRedirects)
			}
			*redirects = len(via)
			return nil
		}
	} else {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client
}

func (h *Handle) baseTransport() *http.Transport {
	dialer := &net.Dialer{}

	t := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialContext:       dialer.DialContext,
		ForceAttemptHTTP2: true,
		DisableKeepAlives: true,
		// Bodies reach the write callback exactly as sent.
		DisableCompression: true,
	}

	if h.opts.ConnectTimeout != nil {
		dialer.Timeout = *h.opts.ConnectTimeout
		t.TLSHandshakeTimeout = *h.opts.ConnectTimeout
	}

	return t
}

// userAgent is an http.RoundTripper, setting the User-Agent header unless
// the request already carries one from HTTPHEADER.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get("User-Agent") != "" {
		return ua.base.RoundTrip(r)
	}

	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
