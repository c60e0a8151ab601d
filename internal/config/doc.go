// Package config loads process-wide library settings from the environment.
//
// Variables use the EASYCURL_ prefix:
//
//	EASYCURL_LOG_LEVEL          debug | info | warn | error (default info)
//	EASYCURL_LOG_FORMAT         text | json (default text)
//	EASYCURL_DEBUG              enables diagnostics for unimplemented identifiers
//	EASYCURL_PROGRESS_INTERVAL  minimum gap between default progress lines (default 1s)
package config
