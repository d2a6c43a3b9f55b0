// Package search answers lexical and semantic queries against the
// stored corpus.
//
// Matching is substring containment computed in Go over a snapshot of
// the store. The optional language-model augmentation rephrases the
// query into multiple terms and annotates result relevance; both steps
// are best-effort and the search never fails because the model is
// unavailable.
//
// Design decision: Query terms are matched in Go rather than being
// interpolated into SQL LIKE clauses. Terms can come from an LLM and
// must be treated as untrusted data; keeping them out of query text
// removes the injection surface entirely.
package search
