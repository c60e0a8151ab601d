package easy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

const formContentType = "application/x-www-form-urlencoded"

// newRequest builds the outgoing request from the current options.
func (h *Handle) newRequest(ctx context.Context) (*http.Request, error) {
	raw := *h.opts.URL
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Code: URLMalformat, Err: fmt.Errorf("parsing url: %w", err)}
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return nil, &Error{Code: UnsupportedProtocol, Err: fmt.Errorf("protocol %q not supported", u.Scheme)}
	}

	if u.Host == "" {
		return nil, &Error{Code: URLMalformat, Err: fmt.Errorf("no host in url %q", *h.opts.URL)}
	}

	var body io.Reader
	var contentType string
	switch {
	case h.opts.PostFields != nil:
		body = bytes.NewReader(h.opts.postBody())
		contentType = formContentType
	case h.opts.MimePost != nil:
		b, ct, err := h.opts.MimePost.encode()
		if err != nil {
			return nil, &Error{Code: BadFunctionArgument, Err: err}
		}
		body = bytes.NewReader(b)
		contentType = ct
	}

	req, err := http.NewRequestWithContext(ctx, h.opts.method(), u.String(), body)
	if err != nil {
		return nil, &Error{Code: URLMalformat, Err: fmt.Errorf("instantiating request: %w", err)}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	applyHeaders(req, h.opts.HTTPHeader)

	return req, nil
}

// applyHeaders applies HTTPHEADER lines. "Name: value" replaces a default
// header (repeats append), "Name:" removes it and "Name;" sends it empty.
func applyHeaders(req *http.Request, list *StringList) {
	seen := make(map[string]bool)

	for _, line := range list.Items() {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			if n, found := strings.CutSuffix(strings.TrimSpace(line), ";"); found && n != "" {
				req.Header[textproto.CanonicalMIMEHeaderKey(n)] = []string{""}
			}
			continue
		}

		name = textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}

		if value == "" {
			req.Header.Del(name)
			continue
		}

		if name == "Host" {
			req.Host = value
			continue
		}

		if !seen[name] {
			req.Header.Del(name)
			seen[name] = true
		}
		req.Header.Add(name, value)
	}
}
