// Package openai implements the translation provider backed by the OpenAI
// chat completions API via the go-openai client library.
package openai
