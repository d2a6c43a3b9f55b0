// Package main provides the entry point for the websearch CLI.
//
// websearch crawls a single web domain into a local SQLite database and
// searches the crawled content, optionally augmented by a local Ollama
// language model.
//
// Usage:
//
//	websearch crawl <seed-url>
//	websearch search <query>
//	websearch ask <question>
//
// See --help for all available options.
package main

// main is the entry point for websearch.
func main() {
	Execute()
}
