// mathtools is a small stdio MCP server exposing calculator and
// random-number tools. It shares nothing with the expense tracker
// beyond the logging package.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/M-Smaran/test-mcp-server/internal/log"
)

func main() {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	s := mcpserver.NewMCPServer("MathTools", "1.0.0",
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	registerArithmetic(s)
	registerRandom(s)

	if err := mcpserver.ServeStdio(s); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}

func registerArithmetic(s *mcpserver.MCPServer) {
	ops := []struct {
		name string
		desc string
		fn   func(a, b float64) (float64, error)
	}{
		{"add", "Add two numbers.", func(a, b float64) (float64, error) { return a + b, nil }},
		{"subtract", "Subtract b from a.", func(a, b float64) (float64, error) { return a - b, nil }},
		{"multiply", "Multiply two numbers.", func(a, b float64) (float64, error) { return a * b, nil }},
		{"divide", "Divide a by b.", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return a / b, nil
		}},
	}

	for _, op := range ops {
		fn := op.fn
		s.AddTool(mcp.NewTool(op.name,
			mcp.WithDescription(op.desc),
			mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
			mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			a, err := req.RequireFloat("a")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			b, err := req.RequireFloat("b")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := fn(a, b)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(strconv.FormatFloat(result, 'f', -1, 64)), nil
		})
	}
}

func registerRandom(s *mcpserver.MCPServer) {
	s.AddTool(mcp.NewTool("random_int",
		mcp.WithDescription("Return a random integer in the inclusive [min, max] range."),
		mcp.WithNumber("min", mcp.Required(), mcp.Description("Lower bound (inclusive)")),
		mcp.WithNumber("max", mcp.Required(), mcp.Description("Upper bound (inclusive)")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		min, err := req.RequireInt("min")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		max, err := req.RequireInt("max")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if min > max {
			return mcp.NewToolResultError("min must not exceed max"), nil
		}

		n := min + rand.IntN(max-min+1)
		return mcp.NewToolResultText(strconv.Itoa(n)), nil
	})
}
