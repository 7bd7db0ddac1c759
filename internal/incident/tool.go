package incident

import (
	"context"

	"github.com/cragr/snow-incident-agent/internal/agent"
	"github.com/cragr/snow-incident-agent/internal/models"
)

// Tool metadata registered with the agent.
const (
	ToolName        = "ServiceNow Incident Lookup"
	ToolDescription = "Gets incident status from ServiceNow by incident number"
)

// Fetcher looks up a single incident by number.
type Fetcher interface {
	Fetch(ctx context.Context, number string) (models.LookupResult, error)
}

// NewLookupTool exposes Render(fetcher.Fetch(number)) as the agent's tool.
func NewLookupTool(fetcher Fetcher) agent.Tool {
	return agent.Tool{
		Name:             ToolName,
		Description:      ToolDescription,
		InputName:        "incident_number",
		InputDescription: "The incident number, for example INC0010001",
		Call: func(ctx context.Context, number string) (string, error) {
			result, err := fetcher.Fetch(ctx, number)
			if err != nil {
				return "", err
			}
			return Render(result), nil
		},
	}
}
