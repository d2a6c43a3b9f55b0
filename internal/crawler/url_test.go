package crawler

import "testing"

// TestNormalize tests URL canonicalization.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips query",
			in:   "http://example.com/page?id=1",
			want: "http://example.com/page",
		},
		{
			name: "strips fragment",
			in:   "http://example.com/page#section",
			want: "http://example.com/page",
		},
		{
			name: "lowercases scheme and host",
			in:   "HTTP://Example.COM/Page",
			want: "http://example.com/Page",
		},
		{
			name: "empty path becomes root",
			in:   "http://example.com",
			want: "http://example.com/",
		},
		{
			name: "path case is preserved",
			in:   "http://example.com/CaseSensitive",
			want: "http://example.com/CaseSensitive",
		},
		{
			name: "malformed input returned unchanged",
			in:   "http://exa mple.com/%zz",
			want: "http://exa mple.com/%zz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestNormalizeEquivalence tests that URL variants of the same resource
// collapse to one normalized form.
func TestNormalizeEquivalence(t *testing.T) {
	t.Parallel()

	variants := []string{
		"http://example.com",
		"http://example.com/",
		"http://EXAMPLE.com/?utm=x",
		"http://example.com/#top",
	}

	want := Normalize(variants[0])
	for _, v := range variants[1:] {
		if got := Normalize(v); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}

// TestInScope tests domain membership.
func TestInScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		host string
		want bool
	}{
		{
			name: "same host http",
			url:  "http://example.com/a",
			host: "example.com",
			want: true,
		},
		{
			name: "same host https",
			url:  "https://example.com/a",
			host: "example.com",
			want: true,
		},
		{
			name: "host comparison is case-insensitive",
			url:  "http://EXAMPLE.com/a",
			host: "example.com",
			want: true,
		},
		{
			name: "different host is out of scope even when path-identical",
			url:  "http://other.com/a",
			host: "example.com",
			want: false,
		},
		{
			name: "subdomain is out of scope",
			url:  "http://www.example.com/a",
			host: "example.com",
			want: false,
		},
		{
			name: "non-http scheme is out of scope",
			url:  "ftp://example.com/a",
			host: "example.com",
			want: false,
		},
		{
			name: "relative URL is out of scope",
			url:  "/a",
			host: "example.com",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InScope(tt.url, tt.host); got != tt.want {
				t.Errorf("InScope(%q, %q) = %v, want %v", tt.url, tt.host, got, tt.want)
			}
		})
	}
}
