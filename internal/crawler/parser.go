package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/Senthilsivam41/feature-websearch/internal/model"
)

// Extractor turns parsed HTML into a page's title, text content, links,
// and image URLs. Relative URLs are resolved against the base URL so the
// frontier and store only ever see absolute form.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure for subtree removal
//  3. More maintainable than complex regex patterns
type Extractor struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative references.
	baseURL *url.URL
}

// ExtractResult contains everything extracted from one HTML page.
//
// Design decision: A single parsing pass fills the whole struct rather
// than exposing per-field methods; related data is collected together
// and the caller picks what it needs.
type ExtractResult struct {
	// Title is the document title, or "No Title" if absent.
	Title string

	// Text is the clean-text variant of the page content: all text with
	// script and style subtrees removed, one trimmed line per text node,
	// newline-joined.
	Text string

	// BroadText is the broad extraction variant: the text of every
	// paragraph and div element, space-joined.
	BroadText string

	// Links contains every anchor href resolved to absolute form.
	// Used for discovery only; links are not stored in page records.
	Links []string

	// Images contains every image source resolved to absolute form,
	// in encounter order. Duplicates are preserved.
	Images []string
}

// NewExtractor creates an Extractor resolving against the given base URL.
func NewExtractor(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{baseURL: u}, nil
}

// Extract parses HTML content and extracts title, text, links, and images.
// Parse failures degrade rather than abort: the caller receives a result
// with empty fields and the placeholder title alongside the error.
func (e *Extractor) Extract(content io.Reader) (*ExtractResult, error) {
	result := &ExtractResult{Title: model.NoTitle}

	doc, err := html.Parse(content)
	if err != nil {
		return result, err
	}

	var blockTexts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					if t := strings.TrimSpace(n.FirstChild.Data); t != "" {
						result.Title = t
					}
				}
			case "a":
				if href := e.resolveURL(getAttr(n, "href")); href != "" {
					result.Links = append(result.Links, href)
				}
			case "img":
				if src := e.resolveURL(getAttr(n, "src")); src != "" {
					result.Images = append(result.Images, src)
				}
			case "p", "div":
				if t := collapsedText(n); t != "" {
					blockTexts = append(blockTexts, t)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	result.BroadText = strings.Join(blockTexts, " ")

	// Clean text comes from the stripped document, so compute it after
	// the broad walk has seen the original tree.
	removeSubtrees(doc, "script", "style")
	result.Text = strippedText(doc)

	return result, nil
}

// ExtractBlocks implements the targeted-search variant. With a focus
// string, it returns the text of the nearest enclosing div of each text
// node containing the focus (case-insensitive), deduplicated by block
// text. Without one, it returns the text of every non-empty div, also
// deduplicated. Encounter order is preserved either way.
func (e *Extractor) ExtractBlocks(content io.Reader, focus string) ([]string, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var blocks []string
	add := func(text string) {
		if text == "" {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		blocks = append(blocks, text)
	}

	focusLower := strings.ToLower(focus)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if focus != "" {
			if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), focusLower) {
				if div := nearestDiv(n); div != nil {
					add(blockText(div))
				}
			}
		} else if n.Type == html.ElementNode && n.Data == "div" {
			add(blockText(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return blocks, nil
}

// resolveURL resolves an href or src against the base URL.
// Pseudo-links (javascript:, mailto:, tel:, data:, bare fragments) are
// dropped because they never identify a fetchable resource.
func (e *Extractor) resolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" ||
		strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "tel:") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "#") {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return e.baseURL.ResolveReference(u).String()
}

// nearestDiv climbs from a node to its closest div ancestor.
func nearestDiv(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "div" {
			return p
		}
	}
	return nil
}

// removeSubtrees detaches every element with one of the given tag names
// from the tree, including all descendants.
func removeSubtrees(root *html.Node, tags ...string) {
	drop := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		drop[t] = struct{}{}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			if c.Type == html.ElementNode {
				if _, ok := drop[c.Data]; ok {
					n.RemoveChild(c)
					c = next
					continue
				}
			}
			walk(c)
			c = next
		}
	}
	walk(root)
}

// strippedText returns all text under the node, one trimmed non-empty
// line per text node, newline-joined.
func strippedText(root *html.Node) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				lines = append(lines, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(lines, "\n")
}

// blockText returns the text of a block element in the same shape as
// strippedText: per-node trimmed lines, newline-joined.
func blockText(n *html.Node) string {
	return strippedText(n)
}

// collapsedText returns the node's descendant text with all whitespace
// runs collapsed to single spaces.
func collapsedText(n *html.Node) string {
	return strings.Join(strings.Fields(strippedText(n)), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
