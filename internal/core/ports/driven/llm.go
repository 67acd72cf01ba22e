package driven

import "context"

// GenerativeModel produces text from a prompt.
//
// Implementations may include:
//   - Groq (llama3 family, OpenAI-compatible API)
//   - Any OpenAI-compatible /chat/completions endpoint
type GenerativeModel interface {
	// Generate produces a completion for the prompt. It should respect
	// the context deadline so one slow call cannot pin a worker.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the provider is reachable.
	Ping(ctx context.Context) error
}
