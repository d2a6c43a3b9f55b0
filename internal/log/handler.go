package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Masked replaces credential values in log output.
const Masked = "***MASKED***"

// credentialKeys lists attribute keys whose values are always masked,
// compared case-insensitively. These cover the HTTP credential headers
// a site configuration may carry plus common secret field names.
var credentialKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
	"token":               true,
	"api_key":             true,
	"apikey":              true,
	"credential":          true,
	"session":             true,
}

// credentialPatterns match values that embed a credential regardless of
// the attribute key, such as a header dump or a full request line.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)basic\s+[a-zA-Z0-9+/]+=*`),
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), // JWT
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
}

// RedactHandler wraps another slog.Handler and masks credential
// attributes before forwarding records to it.
//
// Design decision: masking happens at the handler layer rather than at
// each logging call site because: 1. call sites cannot know which
// configured headers are sensitive, 2. a single chokepoint cannot be
// bypassed by a forgotten sanitize call, 3. group and nested attributes
// are handled uniformly.
type RedactHandler struct {
	inner slog.Handler
}

// NewRedactHandler wraps inner with credential masking.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return &RedactHandler{inner: inner}
}

// Enabled reports whether the wrapped handler handles records at the
// given level.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle masks credential attributes on the record and forwards it.
func (h *RedactHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clean.AddAttrs(redactAttr(attr))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

// WithAttrs returns a handler whose wrapped handler carries the masked
// form of attrs.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		masked[i] = redactAttr(attr)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(masked)}
}

// WithGroup returns a handler that starts a group on the wrapped
// handler. Attributes added inside the group still pass through
// masking.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name)}
}

// redactAttr masks a single attribute, recursing into groups.
func redactAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		members := attr.Value.Group()
		masked := make([]slog.Attr, len(members))
		for i, member := range members {
			masked[i] = redactAttr(member)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(masked...)}
	}
	if credentialKeys[strings.ToLower(attr.Key)] {
		return slog.String(attr.Key, Masked)
	}
	if attr.Value.Kind() == slog.KindString {
		if masked, changed := maskValue(attr.Value.String()); changed {
			return slog.String(attr.Key, masked)
		}
	}
	return attr
}

// maskValue replaces embedded credential substrings in s. The second
// return value reports whether anything was replaced.
func maskValue(s string) (string, bool) {
	changed := false
	for _, pattern := range credentialPatterns {
		if pattern.MatchString(s) {
			s = pattern.ReplaceAllString(s, Masked)
			changed = true
		}
	}
	return s, changed
}

// NewLogger returns a text logger writing to w with credential masking
// applied. Verbose mode lowers the level to debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactHandler(text))
}
