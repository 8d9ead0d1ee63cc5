package llm

import (
	"fmt"
	"strings"
)

// BuildUserPrompt assembles the user-facing part of the prompt shared by
// every provider. The policy context block goes in verbatim; when
// retrieval found nothing the model is told so instead of being handed
// an empty block to hallucinate from.
func BuildUserPrompt(userQuery string, policyContext string, messageHistory []string) string {
	var b strings.Builder

	if policyContext != "" {
		b.WriteString("CONTEXT FROM COMPANY DOCUMENTS:\n")
		b.WriteString(policyContext)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No relevant company policy was found for this question. " +
			"State that clearly and offer general guidance.\n\n")
	}

	if len(messageHistory) > 0 {
		b.WriteString("RECENT CONVERSATION:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "User Question: %s", userQuery)
	return b.String()
}
