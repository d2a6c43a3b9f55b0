// Package llm provides a minimal client for a local Ollama instance.
//
// The language model is a strictly optional collaborator: callers use it
// to rephrase search queries and annotate result relevance, and every
// call site degrades gracefully when the server is absent, unreachable,
// or returns garbage. Nothing in this package is allowed to make a crawl
// or a search fail.
package llm
