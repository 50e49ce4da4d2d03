// Package advisor turns raw validation findings into human-readable
// explanations using an LLM behind an OpenAI-compatible API. It is strictly
// advisory: generation and validation never depend on it.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rezonia/ubl-generator/internal/model"
	"github.com/rezonia/ubl-generator/internal/validator"
)

// Advisor explains validation findings
type Advisor struct {
	client *Client
	model  string
}

// New creates an advisor on top of an LLM client
func New(client *Client, model string) *Advisor {
	return &Advisor{client: client, model: model}
}

// Explain asks the LLM to explain the report's findings. A clean report
// returns an empty string without calling out.
func (a *Advisor) Explain(ctx context.Context, docType model.DocumentType, report *validator.Report) (string, error) {
	if report == nil || report.OK() {
		return "", nil
	}

	var sb strings.Builder
	for i, f := range report.Findings {
		fmt.Fprintf(&sb, "%d. [%s] %s", i+1, f.Severity, f.Message)
		if f.Test != "" {
			fmt.Fprintf(&sb, " (rule: %s)", f.Test)
		}
		sb.WriteString("\n")
	}

	prompt := fmt.Sprintf(explainUserPromptTemplate, docType, sb.String())
	text, err := a.client.ChatText(ctx, a.model, explainSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("explain findings: %w", err)
	}
	return strings.TrimSpace(text), nil
}
