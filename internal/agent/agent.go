package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cragr/snow-incident-agent/internal/config"
	"github.com/cragr/snow-incident-agent/internal/llm"
	"github.com/cragr/snow-incident-agent/internal/metrics"
)

const systemPrompt = `You answer questions about ServiceNow incidents.
Use the available tool to look up the incident the user names, then reply with the tool's result.
Do not invent incident details that the tool did not return.`

var (
	// ErrMaxSteps is returned when the model keeps requesting tools past the step limit.
	ErrMaxSteps = errors.New("agent: step limit reached without a final answer")
	// ErrEmptyResponse is returned when the model replies with neither text nor tool calls.
	ErrEmptyResponse = errors.New("agent: completion service returned an empty response")
)

// Agent lets a completion service decide which tool calls answer a query.
type Agent struct {
	provider    llm.Provider
	temperature float64
	maxSteps    int
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates an Agent on top of provider.
func New(provider llm.Provider, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Agent {
	maxSteps := cfg.AgentMaxSteps
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Agent{
		provider:    provider,
		temperature: cfg.LLMTemperature,
		maxSteps:    maxSteps,
		metrics:     m,
		logger:      logger,
	}
}

// Run implements Runner. Tool errors abort the run and are returned as is.
func (a *Agent) Run(ctx context.Context, input string, tools []Tool) (string, error) {
	if len(tools) == 0 {
		return "", ErrNoTools
	}

	byName := make(map[string]Tool, len(tools))
	defs := make([]llm.FunctionDef, 0, len(tools))
	for _, tool := range tools {
		byName[tool.FunctionName()] = tool
		defs = append(defs, tool.Definition())
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: input},
	}

	for step := 1; step <= a.maxSteps; step++ {
		resp, err := a.provider.Chat(ctx, llm.ChatRequest{
			Messages:    messages,
			Tools:       defs,
			Temperature: &a.temperature,
		})
		a.metrics.ObserveCompletion(a.provider.Name(), err)
		if err != nil {
			return "", fmt.Errorf("completion request failed: %w", err)
		}

		a.logger.Debug("completion received",
			"provider", a.provider.Name(),
			"step", step,
			"tool_calls", len(resp.ToolCalls),
			"prompt_tokens", resp.Usage.PromptTokens,
			"completion_tokens", resp.Usage.CompletionTokens,
		)

		if len(resp.ToolCalls) == 0 {
			if strings.TrimSpace(resp.Content) == "" {
				return "", ErrEmptyResponse
			}
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			output, err := a.invoke(ctx, byName, call, input)
			if err != nil {
				return "", err
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
		}
	}

	return "", ErrMaxSteps
}

// invoke runs one requested tool call. An unknown tool name is reported back
// to the model rather than failing the run.
func (a *Agent) invoke(ctx context.Context, byName map[string]Tool, call llm.ToolCall, query string) (string, error) {
	tool, ok := byName[call.Function.Name]
	if !ok {
		a.logger.Warn("model requested unknown tool", "tool", call.Function.Name)
		return fmt.Sprintf("Unknown tool %q.", call.Function.Name), nil
	}

	toolInput := tool.ParseInput(call.Function.Arguments)
	if toolInput == "" {
		toolInput = query
	}

	a.logger.Info("invoking tool", "tool", tool.Name, "input", toolInput)

	output, err := tool.Call(ctx, toolInput)
	if err != nil {
		return "", fmt.Errorf("tool %q failed: %w", tool.Name, err)
	}
	return output, nil
}
