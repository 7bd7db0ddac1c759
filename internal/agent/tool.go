// Package agent runs a query through a set of tools, either by letting a
// completion service choose the calls or by calling the single tool directly.
package agent

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/cragr/snow-incident-agent/internal/llm"
)

const defaultInputName = "input"

// Tool is a named capability that takes one string and returns text.
type Tool struct {
	Name        string
	Description string

	// InputName and InputDescription describe the single string argument.
	InputName        string
	InputDescription string

	Call func(ctx context.Context, input string) (string, error)
}

// FunctionName returns Name in the character set completion APIs accept,
// e.g. "ServiceNow Incident Lookup" becomes "servicenow_incident_lookup".
func (t Tool) FunctionName() string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(t.Name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func (t Tool) inputName() string {
	if t.InputName == "" {
		return defaultInputName
	}
	return t.InputName
}

// Definition returns the function schema advertised to the model.
func (t Tool) Definition() llm.FunctionDef {
	return llm.FunctionDef{
		Name:        t.FunctionName(),
		Description: t.Description,
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				t.inputName(): map[string]any{
					"type":        "string",
					"description": t.InputDescription,
				},
			},
			"required": []string{t.inputName()},
		},
	}
}

// ParseInput extracts the string argument from the model's JSON arguments.
// Bare strings and non-JSON text are accepted as the argument itself. String
// values are returned verbatim.
func (t Tool) ParseInput(arguments string) string {
	arguments = strings.TrimSpace(arguments)

	var obj map[string]any
	if err := json.Unmarshal([]byte(arguments), &obj); err == nil {
		if v, ok := obj[t.inputName()].(string); ok {
			return v
		}
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(arguments), &s); err == nil {
		return s
	}
	return arguments
}
