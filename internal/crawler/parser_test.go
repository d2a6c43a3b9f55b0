package crawler

import (
	"strings"
	"testing"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// TestExtract tests the single-pass HTML extraction.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/page")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(`<html><head><title> My Page </title></head><body></body></html>`))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}
		if result.Title != "My Page" {
			t.Errorf("expected title 'My Page', got %q", result.Title)
		}
	})

	t.Run("missing title yields placeholder", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(`<html><body><p>content</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}
		if result.Title != model.NoTitle {
			t.Errorf("expected %q, got %q", model.NoTitle, result.Title)
		}
	})

	t.Run("resolves relative links against base", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/about">About</a>
			<a href="contact.html">Contact</a>
			<a href="http://other.com/x">Other</a>
			<a href="mailto:hi@example.com">Mail</a>
			<a href="#top">Top</a>
		</body></html>`

		e, err := NewExtractor("http://example.com/dir/page")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		want := []string{
			"http://example.com/about",
			"http://example.com/dir/contact.html",
			"http://other.com/x",
		}
		if len(result.Links) != len(want) {
			t.Fatalf("expected %d links, got %d: %v", len(want), len(result.Links), result.Links)
		}
		for i, w := range want {
			if result.Links[i] != w {
				t.Errorf("link %d: got %q, want %q", i, result.Links[i], w)
			}
		}
	})

	t.Run("images keep encounter order and duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<img src="/logo.png">
			<img src="banner.jpg">
			<img src="/logo.png">
			<img>
		</body></html>`

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		want := []string{
			"http://example.com/logo.png",
			"http://example.com/banner.jpg",
			"http://example.com/logo.png",
		}
		if len(result.Images) != len(want) {
			t.Fatalf("expected %d images, got %d: %v", len(want), len(result.Images), result.Images)
		}
		for i, w := range want {
			if result.Images[i] != w {
				t.Errorf("image %d: got %q, want %q", i, result.Images[i], w)
			}
		}
	})

	t.Run("clean text removes script and style subtrees", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<style>body { color: red; }</style>
		</head><body>
			<p>  Hello  </p>
			<script>var secret = 1;</script>
			<p>World</p>
		</body></html>`

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		if result.Text != "Hello\nWorld" {
			t.Errorf("expected clean text 'Hello\\nWorld', got %q", result.Text)
		}
		if strings.Contains(result.Text, "secret") {
			t.Error("expected script content removed from clean text")
		}
		if strings.Contains(result.Text, "color") {
			t.Error("expected style content removed from clean text")
		}
	})

	t.Run("broad text joins paragraph and div content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>first</p>
			<div>second block</div>
			<span>ignored</span>
		</body></html>`

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		result, err := e.Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		if !strings.Contains(result.BroadText, "first") || !strings.Contains(result.BroadText, "second block") {
			t.Errorf("expected broad text to include p and div content, got %q", result.BroadText)
		}
	})
}

// TestExtractBlocks tests the targeted-search extraction variant.
func TestExtractBlocks(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
		<div id="a">Breaking news about weather today</div>
		<div id="b"><p>Sports <b>results</b> inside</p></div>
		<div id="c">Breaking news about weather today</div>
		<div id="d"></div>
	</body></html>`

	t.Run("focus restricts to nearest enclosing div", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		blocks, err := e.ExtractBlocks(strings.NewReader(page), "WEATHER")
		if err != nil {
			t.Fatalf("failed to extract blocks: %v", err)
		}

		// Divs a and c have identical text, deduplicated by content.
		if len(blocks) != 1 {
			t.Fatalf("expected 1 deduplicated block, got %d: %v", len(blocks), blocks)
		}
		if !strings.Contains(blocks[0], "weather") {
			t.Errorf("expected block to contain focus text, got %q", blocks[0])
		}
	})

	t.Run("focus match climbs past non-div parents", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		blocks, err := e.ExtractBlocks(strings.NewReader(page), "results")
		if err != nil {
			t.Fatalf("failed to extract blocks: %v", err)
		}

		if len(blocks) != 1 {
			t.Fatalf("expected 1 block, got %d: %v", len(blocks), blocks)
		}
		if !strings.Contains(blocks[0], "Sports") {
			t.Errorf("expected enclosing div text, got %q", blocks[0])
		}
	})

	t.Run("no focus returns all non-empty divs deduplicated", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		blocks, err := e.ExtractBlocks(strings.NewReader(page), "")
		if err != nil {
			t.Fatalf("failed to extract blocks: %v", err)
		}

		// a/c collapse to one, b counts once, d is empty and skipped.
		if len(blocks) != 2 {
			t.Errorf("expected 2 blocks, got %d: %v", len(blocks), blocks)
		}
	})

	t.Run("no match returns nothing", func(t *testing.T) {
		t.Parallel()

		e, err := NewExtractor("http://example.com/")
		if err != nil {
			t.Fatalf("failed to create extractor: %v", err)
		}

		blocks, err := e.ExtractBlocks(strings.NewReader(page), "absent term")
		if err != nil {
			t.Fatalf("failed to extract blocks: %v", err)
		}
		if len(blocks) != 0 {
			t.Errorf("expected no blocks, got %v", blocks)
		}
	})
}
