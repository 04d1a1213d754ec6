// Package llm provides the completion capability used to classify captures.
// It supports Anthropic, OpenAI and Gemini through their official SDKs, with
// optional client-side rate limiting.
package llm
