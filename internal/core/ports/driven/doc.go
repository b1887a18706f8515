// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the LLM gateway, the embedding service,
// the vector index, the encyclopedia API, the article cache, the config
// store and the video metadata extractor.
package driven
