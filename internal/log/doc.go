// Package log provides a credential-masking slog handler.
//
// The site configuration file can carry Authorization headers, cookies,
// and API tokens for authenticated crawling, and verbose logging prints
// request configuration. The handler in this package masks attribute
// values that look like credentials before they reach the underlying
// handler, so debug output stays safe to share.
package log
