// Package openai implements the ai interfaces using OpenAI-compatible APIs.
//
// The implementation targets local OpenAI-compatible services (Ollama,
// LocalAI, vLLM) as well as the hosted OpenAI API, via langchaingo's openai
// client. Authentication uses a placeholder token by default, which local
// services ignore.
package openai
