package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/engine"
)

// SystemPrompt frames the model as a SOX compliance analyst. The digest is
// the only context it receives; it never sees raw customer data beyond the
// high-risk memo lines.
const SystemPrompt = "You are a SOX compliance analyst reviewing credit memo validation results. " +
	"Answer concisely and base every statement strictly on the validation summary provided. " +
	"Do not invent memo IDs, amounts, or findings that are not in the summary."

// QuickActions maps short action names to canned analysis queries.
var QuickActions = map[string]string{
	"explain":  "Explain the compliance violations found in this batch and what controls failed.",
	"risk":     "Which memos need immediate attention and why? Prioritize by risk.",
	"timeline": "Analyze the approval timeline performance. Are SLA breaches systemic or isolated?",
	"summary":  "Write a short executive summary of this validation run for the finance controller.",
}

// QuickActionNames returns the available quick action names sorted for
// stable help output.
func QuickActionNames() []string {
	names := make([]string, 0, len(QuickActions))
	for name := range QuickActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildPrompt combines the digest context with the user's question.
func BuildPrompt(digest engine.Digest, query string) string {
	var b strings.Builder
	b.WriteString(digest.Render())
	b.WriteString("\nQuestion: ")
	b.WriteString(strings.TrimSpace(query))
	b.WriteString("\n")
	return b.String()
}

// ResolveQuery returns the query text for either a quick action name or a
// free-form question. Exactly one of action and query must be set.
func ResolveQuery(action, query string) (string, error) {
	switch {
	case action != "" && query != "":
		return "", fmt.Errorf("specify either an action or a query, not both")
	case action != "":
		resolved, ok := QuickActions[strings.ToLower(action)]
		if !ok {
			return "", fmt.Errorf("unknown action %q (available: %s)", action, strings.Join(QuickActionNames(), ", "))
		}
		return resolved, nil
	case query != "":
		return query, nil
	default:
		return "", fmt.Errorf("an action or a query is required")
	}
}
