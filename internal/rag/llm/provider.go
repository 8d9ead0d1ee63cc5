package llm

import "context"

// Provider answers a user question given the assembled policy context
// block (verbatim from retrieval, possibly empty) and recent chat
// history. Implementations own their transport and prompt template.
type Provider interface {
	Generate(ctx context.Context, query string, policyContext string, messageHistory []string) (string, error)
}
