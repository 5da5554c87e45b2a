package mcp

import (
	"context"
	"log/slog"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type CheckFunction func(ctx context.Context, input *CheckToolInput) (*CheckToolOutput, error)

type CheckerRegistry struct {
	checkers map[string]CheckFunction
}

func NewCheckerRegistry() *CheckerRegistry {
	return &CheckerRegistry{
		checkers: make(map[string]CheckFunction),
	}
}

func (r *CheckerRegistry) Register(name string, fn CheckFunction) {
	r.checkers[name] = fn
}

func (r *CheckerRegistry) Get(name string) (CheckFunction, bool) {
	fn, ok := r.checkers[name]
	return fn, ok
}

// Names returns the registered tool names, sorted.
func (r *CheckerRegistry) Names() []string {
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer builds an MCP server exposing every registered check as a tool.
func NewServer(registry *CheckerRegistry, version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "a11ycheck",
		Version: version,
	}, nil)

	for _, name := range registry.Names() {
		fn, _ := registry.Get(name)
		addChecker(server, name, fn)
	}
	return server
}

// RunServer serves the registry over stdio until ctx is done or the client
// disconnects.
func RunServer(ctx context.Context, registry *CheckerRegistry, version string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := NewServer(registry, version).Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		logger.Error("MCP server failed", "error", err)
		return err
	}
	return nil
}

func addChecker(server *mcpsdk.Server, name string, fn CheckFunction) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        name,
		Description: getDescription(name),
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckToolInput) (*mcpsdk.CallToolResult, CheckToolOutput, error) {
		output, err := fn(ctx, &input)
		if err != nil {
			return nil, CheckToolOutput{}, err
		}

		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: output.Report},
			},
		}, *output, nil
	})
}

func getDescription(name string) string {
	descriptions := map[string]string{
		"check_accessibility": "Run every label and button check against the page and capture a full-page screenshot",
		"check_labels":        "Check that player controls have a visible <label for> with the expected text",
		"check_buttons":       "Check that the slide buttons carry the exact expected aria-label",
	}

	if desc, ok := descriptions[name]; ok {
		return desc
	}
	return name
}
