// Package file provides file-based configuration and prompt storage.
//
// Configuration lives in a TOML file at ~/.scriptforge/config.toml and
// holds the OpenRouter API key, model names, the request delay and the
// working directories. Prompts live as plain text files under
// ~/.scriptforge/prompts/ so users can tune the wording sent to the
// model without rebuilding the tool.
package file
