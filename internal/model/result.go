package model

// SearchResult is a single hit produced by the search engine.
// Results are derived from stored records at query time and are never
// persisted; each search recomputes them from the current corpus.
type SearchResult struct {
	// URL is the normalized URL of the matching page.
	URL string `json:"url"`

	// Title is the stored page title.
	Title string `json:"title"`

	// Snippet is a bounded window of the page content surrounding the
	// first match, wrapped in ellipsis markers.
	Snippet string `json:"snippet"`

	// Term is the search term that produced the match. When the query
	// was decomposed into multiple terms this identifies which one hit.
	Term string `json:"term,omitempty"`

	// Relevance is an optional LLM-generated relevance note.
	// Empty when the language model capability is absent or failed.
	Relevance string `json:"relevance,omitempty"`

	// Images are the image URLs stored with the matching page.
	Images []string `json:"images,omitempty"`
}
